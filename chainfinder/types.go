// Package chainfinder implements the bounded depth-first cyclic-arbitrage
// search over an exchangegraph.Graph: from a chosen start token, enumerate
// cycles up to Config.MaxHops long, score each by net profit and risk, and
// return the top-k by net profit.
//
// The state-struct-plus-recursive-step shape is carried over from a
// Bellman-Ford-style relaxation search built around a bitset "known" set per
// vertex; the algorithm itself is different (a bounded DFS with true cycle
// construction rather than iterative relaxation), since this spec wants
// ranked cycles, not a single shortest/best path.
package chainfinder

import (
	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/exchangegraph"
)

// Config bounds and filters the search.
type Config struct {
	MaxHops             int
	MinProfitPercentage float64
	MaxSlippage         float64
	MinLiquidity        decimal.Decimal
	MaxRiskScore        float64
	MaxChainsPerToken   int
	MinAmountThreshold  decimal.Decimal
	EnableEarlyPruning  bool
}

// Hop is one edge traversal within a chain.
type Hop struct {
	Edge           *exchangegraph.Edge
	AmountIn       decimal.Decimal
	AmountOut      decimal.Decimal
	CumulativeGas  decimal.Decimal
	CumulativeFees decimal.Decimal
}

// Chain is one accepted arbitrage cycle.
type Chain struct {
	StartToken         string
	Hops               []Hop
	InitialAmount      decimal.Decimal
	FinalAmount        decimal.Decimal
	TotalProfit        decimal.Decimal
	TotalGasCost       decimal.Decimal
	TotalFees          decimal.Decimal
	NetProfit          decimal.Decimal
	ProfitPercentage   float64
	RiskScore          float64
	ExecutionTimeEstimate int
}
