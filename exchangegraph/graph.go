// Package exchangegraph holds the live, multi-edge directed graph of swap
// quotes that the rest of the module reads and writes: vertices are token
// symbols, edges are directed quotes carrying an exchange rate, liquidity,
// and the gas/fee/slippage figures the arbitrage chain finder scores on.
//
// The locking and index-map shape is carried over from a token/pool-ID index
// built for a multi-protocol registry; here the index collapses to a single
// map keyed directly by token symbol because a pair record is self-contained
// and needs no separate pool/token registries to resolve.
package exchangegraph

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/logging"
	"github.com/dexgraph/arbiscan/pair"
)

// Edge is one directed swap quote. Every pair contributes exactly two edges
// (forward and reverse), both tagged with the same PairID.
type Edge struct {
	PairID        string
	FromToken     string
	ToToken       string
	Dex           string
	ExchangeRate  decimal.Decimal
	Liquidity     decimal.Decimal
	GasCost       decimal.Decimal
	Slippage      float64
	FeePercentage float64
}

// Stats is the (token_count, edge_count) snapshot returned by Graph.Stats.
type Stats struct {
	TokenCount int
	EdgeCount  int
}

// Graph is a single-writer, many-reader directed multigraph keyed by token
// symbol. The mutex is held for the entirety of one upsert/remove, so both
// directed edges of a pair change atomically; readers take it once per read
// call (EdgesFrom, Tokens, ...), not for a whole chain search.
type Graph struct {
	mu        sync.RWMutex
	adjacency map[string][]*Edge
	tokens    mapset.Set[string]
	updatedAt time.Time
	logger    logging.Logger
}

// New returns an empty graph. A nil logger is replaced with logging.Nop.
func New(logger logging.Logger) *Graph {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Graph{
		adjacency: make(map[string][]*Edge),
		tokens:    mapset.NewThreadUnsafeSet[string](),
		logger:    logger,
	}
}

// BuildFrom clears the graph, then inserts every pair, logging and skipping
// per-pair validation failures. It returns the count of edges in the rebuilt
// graph (two per successfully inserted pair).
func (g *Graph) BuildFrom(pairs []pair.Record) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.adjacency = make(map[string][]*Edge)
	g.tokens = mapset.NewThreadUnsafeSet[string]()

	for _, rec := range pairs {
		if err := g.upsertLocked(rec); err != nil {
			g.logger.Warn("exchangegraph: skipping pair during build", "pair_id", rec.ID, "error", err)
			continue
		}
	}
	g.updatedAt = time.Now()

	inserted := 0
	for _, edges := range g.adjacency {
		inserted += len(edges)
	}
	return inserted
}

// UpsertPair validates rec, derives its forward/reverse rates, and either
// updates the two matching directed edges in place or appends them. Ordering
// within each adjacency list is preserved across refreshes of the same pair.
func (g *Graph) UpsertPair(rec pair.Record) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.upsertLocked(rec)
	if err == nil {
		g.updatedAt = time.Now()
	}
	return err
}

// RemovePair deletes both directed edges tagged with pairID. After removal,
// any vertex whose adjacency list becomes empty is purged along with its
// entry in the known-token set.
func (g *Graph) RemovePair(pairID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for token, edges := range g.adjacency {
		filtered := edges[:0:0]
		for _, e := range edges {
			if e.PairID != pairID {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(g.adjacency, token)
			g.tokens.Remove(token)
		} else {
			g.adjacency[token] = filtered
		}
	}
	g.updatedAt = time.Now()
}

// BatchResult is the per-batch tally returned by BatchUpsert.
type BatchResult struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// BatchUpsert applies UpsertPair to every record, aggregating failures rather
// than aborting the batch.
func (g *Graph) BatchUpsert(pairs []pair.Record) BatchResult {
	var result BatchResult
	for _, rec := range pairs {
		if err := g.UpsertPair(rec); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("pair %s: %w", rec.ID, err))
			continue
		}
		result.Succeeded++
	}
	return result
}

// EdgesFrom returns a read-only snapshot of the outgoing edges for token, in
// adjacency order.
func (g *Graph) EdgesFrom(token string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := g.adjacency[token]
	out := make([]*Edge, len(edges))
	copy(out, edges)
	return out
}

// Tokens returns a snapshot of every known vertex symbol, in no particular
// order.
func (g *Graph) Tokens() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tokens.ToSlice()
}

// HasToken reports whether token is a known vertex in the graph.
func (g *Graph) HasToken(token string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tokens.Contains(token)
}

// HasDirectPath reports whether any edge goes directly from a to b.
func (g *Graph) HasDirectPath(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, e := range g.adjacency[a] {
		if e.ToToken == b {
			return true
		}
	}
	return false
}

// Stats returns the current (token_count, edge_count) snapshot.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edgeCount := 0
	for _, edges := range g.adjacency {
		edgeCount += len(edges)
	}
	return Stats{TokenCount: g.tokens.Cardinality(), EdgeCount: edgeCount}
}

// upsertLocked assumes mu is already held for writing.
func (g *Graph) upsertLocked(rec pair.Record) error {
	if err := validate(rec); err != nil {
		return err
	}

	forward, err := pair.ForwardRate(rec)
	if err != nil {
		return fmt.Errorf("price derivation: %w", err)
	}
	reverse, err := pair.ReverseRate(forward)
	if err != nil {
		return fmt.Errorf("price derivation: %w", err)
	}

	liquidity, err := decimal.NewFromString(rec.ReserveUSD)
	if err != nil {
		liquidity = decimal.Zero
	}

	gasCost := gasCostFor(rec.Dex)
	feePct := feePercentageFor(rec.Dex)
	slip := slippageFor(rec.ReserveUSD)

	from0to1 := &Edge{
		PairID:        rec.ID,
		FromToken:     rec.Token0.Symbol,
		ToToken:       rec.Token1.Symbol,
		Dex:           rec.Dex,
		ExchangeRate:  forward,
		Liquidity:     liquidity,
		GasCost:       gasCost,
		Slippage:      slip,
		FeePercentage: feePct,
	}
	from1to0 := &Edge{
		PairID:        rec.ID,
		FromToken:     rec.Token1.Symbol,
		ToToken:       rec.Token0.Symbol,
		Dex:           rec.Dex,
		ExchangeRate:  reverse,
		Liquidity:     liquidity,
		GasCost:       gasCost,
		Slippage:      slip,
		FeePercentage: feePct,
	}

	g.upsertEdgeLocked(from0to1)
	g.upsertEdgeLocked(from1to0)

	g.tokens.Add(rec.Token0.Symbol)
	g.tokens.Add(rec.Token1.Symbol)
	return nil
}

// upsertEdgeLocked replaces the edge matching (FromToken, ToToken, PairID) in
// place if it exists, preserving its ordinal position; otherwise it appends.
func (g *Graph) upsertEdgeLocked(edge *Edge) {
	edges := g.adjacency[edge.FromToken]
	for i, existing := range edges {
		if existing.ToToken == edge.ToToken && existing.PairID == edge.PairID {
			edges[i] = edge
			return
		}
	}
	g.adjacency[edge.FromToken] = append(edges, edge)
}

// validate performs the pre-insert checks from §4.2: non-empty id, distinct
// symbols, non-empty dex, parseable decimals/reserve_usd, and the
// protocol-specific reserve/sqrt-price preconditions from §4.1.
func validate(rec pair.Record) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("validation: empty pair id")
	}
	if rec.Token0.Symbol == rec.Token1.Symbol {
		return fmt.Errorf("validation: token0/token1 symbols must differ, got %q", rec.Token0.Symbol)
	}
	if strings.TrimSpace(rec.Dex) == "" {
		return fmt.Errorf("validation: empty dex")
	}
	if _, err := strconv.Atoi(rec.Token0.Decimals); err != nil {
		return fmt.Errorf("validation: token0 decimals %q: %w", rec.Token0.Decimals, err)
	}
	if _, err := strconv.Atoi(rec.Token1.Decimals); err != nil {
		return fmt.Errorf("validation: token1 decimals %q: %w", rec.Token1.Decimals, err)
	}
	if _, err := decimal.NewFromString(rec.ReserveUSD); err != nil {
		return fmt.Errorf("validation: reserve_usd %q: %w", rec.ReserveUSD, err)
	}

	switch rec.ProtocolType {
	case pair.ProtocolAMMV2:
		r0, err := decimal.NewFromString(rec.Reserve0)
		if err != nil || r0.Sign() <= 0 {
			return fmt.Errorf("validation: reserve0 must be a positive decimal, got %q", rec.Reserve0)
		}
		r1, err := decimal.NewFromString(rec.Reserve1)
		if err != nil || r1.Sign() <= 0 {
			return fmt.Errorf("validation: reserve1 must be a positive decimal, got %q", rec.Reserve1)
		}
	case pair.ProtocolAMMV3:
		hasSqrt := rec.SqrtPrice != "" && rec.SqrtPrice != "0"
		hasTick := rec.Tick != ""
		if !hasSqrt && !hasTick {
			return fmt.Errorf("validation: V3 pair requires sqrt_price or tick")
		}
	default:
		return fmt.Errorf("validation: unknown protocol_type %q", rec.ProtocolType)
	}
	return nil
}
