package ingest

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/dexgraph/arbiscan/display"
	"github.com/dexgraph/arbiscan/logging"
	"github.com/dexgraph/arbiscan/pair"
)

// GraphWriter is the narrow slice of exchangegraph.Graph the pipeline needs
// to refresh edges as swaps arrive.
type GraphWriter interface {
	UpsertPair(rec pair.Record) error
}

// Option configures a Pipeline constructed by New.
type Option interface {
	apply(*Pipeline)
}

type funcOption func(*Pipeline)

func (f funcOption) apply(p *Pipeline) { f(p) }

func newOption(f func(*Pipeline)) Option { return funcOption(f) }

// WithLogger overrides the pipeline's logger (default logging.Nop).
func WithLogger(logger logging.Logger) Option {
	return newOption(func(p *Pipeline) { p.logger = logger })
}

// WithDisplayChannel overrides the pipeline's outgoing display channel
// (default: a buffered internal channel of capacity display.DefaultCapacity).
func WithDisplayChannel(ch chan display.Message) Option {
	return newOption(func(p *Pipeline) { p.displayCh = ch })
}

// Pipeline subscribes to V2 and V3 swap logs for a fixed contract set and
// keeps an Exchange Graph's edges fresh, emitting one PartialUpdate display
// message per successfully applied swap.
type Pipeline struct {
	client *ethclient.Client
	graph  GraphWriter
	logger logging.Logger

	v2 []pair.Record
	v3 []pair.Record

	byAddress map[common.Address]recordSlot

	displayCh chan display.Message
	errCh     chan error
}

type recordSlot struct {
	index  int // position in the original contract list, used as the display row index
	record pair.Record
}

// New partitions pairs into V2/V3 subsets by protocol_type and builds the
// address lookup used for dispatch. The pipeline does not start running
// until Run is called.
func New(client *ethclient.Client, graph GraphWriter, pairs []pair.Record, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:    client,
		graph:     graph,
		logger:    logging.Nop{},
		displayCh: make(chan display.Message, display.DefaultCapacity),
		errCh:     make(chan error, 1),
		byAddress: make(map[common.Address]recordSlot, len(pairs)),
	}

	for i, rec := range pairs {
		switch rec.ProtocolType {
		case pair.ProtocolAMMV2:
			p.v2 = append(p.v2, rec)
		case pair.ProtocolAMMV3:
			p.v3 = append(p.v3, rec)
		}
		p.byAddress[common.HexToAddress(rec.ID)] = recordSlot{index: i, record: rec}
	}

	for _, opt := range opts {
		opt.apply(p)
	}
	return p
}

// Display returns the outgoing display-message channel.
func (p *Pipeline) Display() <-chan display.Message {
	return p.displayCh
}

// Err returns the channel on which a fatal pipeline error is reported,
// exactly once, when either subscription terminates.
func (p *Pipeline) Err() <-chan error {
	return p.errCh
}

// Run subscribes to both log streams and processes events until ctx is
// canceled or either subscription ends — the first to terminate stops the
// whole pipeline (select-first-completion); it does not reconnect.
func (p *Pipeline) Run(ctx context.Context) {
	defer close(p.errCh)

	v2Logs := make(chan ethtypes.Log)
	v3Logs := make(chan ethtypes.Log)

	v2Sub, err := p.subscribe(ctx, p.v2, V2SwapSignature, v2Logs)
	if err != nil {
		p.fail(fmt.Errorf("ingest: v2 subscribe: %w", err))
		return
	}
	defer v2Sub.Unsubscribe()

	v3Sub, err := p.subscribe(ctx, p.v3, V3SwapSignature, v3Logs)
	if err != nil {
		p.fail(fmt.Errorf("ingest: v3 subscribe: %w", err))
		return
	}
	defer v3Sub.Unsubscribe()

	p.logger.Info("ingest: subscriptions active", "v2_pairs", len(p.v2), "v3_pairs", len(p.v3))

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-v2Sub.Err():
			p.fail(fmt.Errorf("ingest: v2 subscription ended: %w", err))
			return

		case err := <-v3Sub.Err():
			p.fail(fmt.Errorf("ingest: v3 subscription ended: %w", err))
			return

		case log := <-v2Logs:
			p.handleV2(log)

		case log := <-v3Logs:
			p.handleV3(log)
		}
	}
}

func (p *Pipeline) subscribe(ctx context.Context, recs []pair.Record, signature common.Hash, out chan ethtypes.Log) (ethereum.Subscription, error) {
	addresses := make([]common.Address, 0, len(recs))
	for _, rec := range recs {
		addresses = append(addresses, common.HexToAddress(rec.ID))
	}

	query := ethereum.FilterQuery{
		Addresses: addresses,
		Topics:    [][]common.Hash{{signature}},
	}
	return p.client.SubscribeFilterLogs(ctx, query, out)
}

func (p *Pipeline) handleV2(log ethtypes.Log) {
	swap, err := decodeV2Swap(log)
	if err != nil {
		p.logger.Warn("ingest: malformed v2 swap log, skipping", "tx", log.TxHash, "error", err)
		return
	}
	p.dispatch(swap.Pool, func(rec *pair.Record) {
		rec.Reserve0 = applyReserveDelta(rec.Reserve0, swap.Amount0In, swap.Amount0Out)
		rec.Reserve1 = applyReserveDelta(rec.Reserve1, swap.Amount1In, swap.Amount1Out)
	})
}

func (p *Pipeline) handleV3(log ethtypes.Log) {
	swap, err := decodeV3Swap(log)
	if err != nil {
		p.logger.Warn("ingest: malformed v3 swap log, skipping", "tx", log.TxHash, "error", err)
		return
	}
	p.dispatch(swap.Pool, func(rec *pair.Record) {
		rec.SqrtPrice = swap.SqrtPriceX96.String()
		rec.Tick = fmt.Sprintf("%d", swap.Tick)
	})
}

// dispatch locates the matching pair by address, applies mutate to a copy
// of its record, commits the update to the graph, and — only after that
// commit succeeds — emits the PartialUpdate. A miss is a debug trace, not a
// warning, since addresses outside the configured contract set are expected
// noise on a shared topic filter.
func (p *Pipeline) dispatch(addr common.Address, mutate func(*pair.Record)) {
	slot, ok := p.byAddress[addr]
	if !ok {
		p.logger.Debug("ingest: log from unknown pair address, ignoring", "address", addr.Hex())
		return
	}

	rec := slot.record
	mutate(&rec)

	if err := p.graph.UpsertPair(rec); err != nil {
		p.logger.Warn("ingest: failed to apply swap to graph", "pair_id", rec.ID, "error", err)
		return
	}
	slot.record = rec
	p.byAddress[addr] = slot

	// Blocking send: a slow consumer slows the ingester instead of losing
	// updates.
	row := display.RowFromRecord(slot.index+1, rec)
	p.displayCh <- display.PartialUpdate(slot.index, row)
}

func (p *Pipeline) fail(err error) {
	p.logger.Error("ingest: pipeline stopping", "error", err)
	select {
	case p.errCh <- err:
	default:
	}
}

// applyReserveDelta computes new = old + in - out on raw integer reserves,
// since a V2 Swap event reports gross in/out amounts rather than the
// resulting reserve directly. An unparseable or negative-going result
// leaves the reserve unchanged rather than corrupting it.
func applyReserveDelta(oldReserve string, in, out *big.Int) string {
	o, ok := new(big.Int).SetString(oldReserve, 10)
	if !ok {
		return oldReserve
	}
	result := new(big.Int).Add(o, in)
	result.Sub(result, out)
	if result.Sign() < 0 {
		return oldReserve
	}
	return result.String()
}
