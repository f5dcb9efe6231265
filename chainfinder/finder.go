package chainfinder

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/bitset"
	"github.com/dexgraph/arbiscan/exchangegraph"
)

// ErrUnknownStartToken is the only caller-visible error the finder returns;
// an empty result set is never an error.
var ErrUnknownStartToken = errors.New("chainfinder: unknown start token")

// GraphReader is the read-only subset of *exchangegraph.Graph the finder
// needs; the read phase of one search holds the graph's lock exactly as long
// as it takes to pull the edges and token list it touches.
type GraphReader interface {
	Tokens() []string
	HasToken(token string) bool
	EdgesFrom(token string) []*exchangegraph.Edge
}

// Finder runs the bounded DFS cycle search described in §4.3.
type Finder struct {
	cfg   Config
	graph GraphReader
}

// New returns a Finder bound to graph with the given search configuration.
func New(graph GraphReader, cfg Config) *Finder {
	return &Finder{cfg: cfg, graph: graph}
}

// searchState is the per-call scratch space for one FindChains invocation;
// the bitset "visited" set and index map are carried over from a
// relaxation-style search that indexed vertices once up front rather than
// re-hashing a string on every membership check.
type searchState struct {
	start      string
	tokenIndex map[string]int
	visited    bitset.BitSet
	chains     []Chain
}

// FindChains enumerates cycles starting and ending at startToken, up to
// cfg.MaxHops long, and returns the top cfg.MaxChainsPerToken by net profit.
func (f *Finder) FindChains(startToken string) ([]Chain, error) {
	if !f.graph.HasToken(startToken) {
		return nil, ErrUnknownStartToken
	}

	tokens := f.graph.Tokens()
	tokenIndex := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		tokenIndex[tok] = i
	}

	state := &searchState{
		start:      startToken,
		tokenIndex: tokenIndex,
		visited:    bitset.NewBitSet(uint64(len(tokens))),
	}

	f.search(state, startToken, decimal.NewFromInt(1), 0, nil)

	sort.SliceStable(state.chains, func(i, j int) bool {
		return state.chains[i].NetProfit.GreaterThan(state.chains[j].NetProfit)
	})
	if len(state.chains) > f.cfg.MaxChainsPerToken {
		state.chains = state.chains[:f.cfg.MaxChainsPerToken]
	}
	return state.chains, nil
}

func (f *Finder) search(state *searchState, currentToken string, currentAmount decimal.Decimal, depth int, path []Hop) {
	cfg := f.cfg

	if cfg.EnableEarlyPruning && currentAmount.LessThan(cfg.MinAmountThreshold) {
		return
	}
	if cfg.EnableEarlyPruning && len(state.chains) >= 2*cfg.MaxChainsPerToken {
		return
	}
	if currentToken == state.start && depth > 1 {
		// path is backtracked in place by the caller via append/reslice, so
		// its backing array is reused by sibling branches; copy it before
		// handing it to a Chain that outlives this stack frame.
		hops := make([]Hop, len(path))
		copy(hops, path)
		chain := buildChain(state.start, hops, currentAmount)
		if chain.ProfitPercentage >= cfg.MinProfitPercentage && chain.RiskScore <= cfg.MaxRiskScore {
			state.chains = append(state.chains, chain)
		}
		return
	}
	if depth >= cfg.MaxHops {
		return
	}

	edges := f.graph.EdgesFrom(currentToken)
	if cfg.EnableEarlyPruning {
		sort.SliceStable(edges, func(i, j int) bool {
			return priorityScore(edges[i]) > priorityScore(edges[j])
		})
	}

	for _, edge := range edges {
		if depth > 0 && edge.ToToken == state.start && depth < 2 {
			continue
		}
		if edge.Slippage > cfg.MaxSlippage {
			continue
		}
		if edge.Liquidity.LessThan(cfg.MinLiquidity) {
			continue
		}

		targetIdx, known := state.tokenIndex[edge.ToToken]
		if edge.ToToken != state.start {
			if !known {
				continue
			}
			if state.visited.IsSet(uint64(targetIdx)) {
				continue
			}
		}

		out := amountOut(currentAmount, edge)

		prevGas, prevFees := decimal.Zero, decimal.Zero
		if n := len(path); n > 0 {
			prevGas = path[n-1].CumulativeGas
			prevFees = path[n-1].CumulativeFees
		}
		hop := Hop{
			Edge:           edge,
			AmountIn:       currentAmount,
			AmountOut:      out,
			CumulativeGas:  prevGas.Add(edge.GasCost),
			CumulativeFees: prevFees.Add(currentAmount.Mul(decimal.NewFromFloat(edge.FeePercentage))),
		}
		path = append(path, hop)

		if edge.ToToken != state.start {
			state.visited.Set(uint64(targetIdx))
		}

		f.search(state, edge.ToToken, out, depth+1, path)

		if edge.ToToken != state.start {
			state.visited.Unset(uint64(targetIdx))
		}
		path = path[:len(path)-1]
	}
}

// FindChainsForTokens runs FindChains concurrently across tokens, bounding
// the number of in-flight searches to concurrency. The fan-out/join shape is
// carried over from a reference chain client's per-block indexer fan-out,
// generalized from a fixed WaitGroup of indexers to a semaphore-bounded pool
// since the token list here is caller-supplied and can be arbitrarily long.
func (f *Finder) FindChainsForTokens(tokens []string, concurrency int) map[string][]Chain {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make(map[string][]Chain, len(tokens))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, token := range tokens {
		wg.Add(1)
		sem <- struct{}{}
		go func(tok string) {
			defer wg.Done()
			defer func() { <-sem }()

			chains, err := f.FindChains(tok)
			if err != nil {
				return
			}
			mu.Lock()
			results[tok] = chains
			mu.Unlock()
		}(token)
	}
	wg.Wait()
	return results
}
