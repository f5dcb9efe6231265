package chainfinder

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/exchangegraph"
)

// amountOut implements §4.3.1: amount_out = amount_in * (1 - fee) * rate * (1 - slippage).
func amountOut(amountIn decimal.Decimal, edge *exchangegraph.Edge) decimal.Decimal {
	one := decimal.NewFromInt(1)
	feeFactor := one.Sub(decimal.NewFromFloat(edge.FeePercentage))
	slippageFactor := one.Sub(decimal.NewFromFloat(edge.Slippage))
	return amountIn.Mul(feeFactor).Mul(edge.ExchangeRate).Mul(slippageFactor)
}

// priorityScore implements §4.3.2, used only to order outgoing edges when
// pruning is enabled.
func priorityScore(edge *exchangegraph.Edge) float64 {
	liquidity, _ := edge.Liquidity.Float64()
	rate, _ := edge.ExchangeRate.Float64()

	logLiquidity := 0.0
	if liquidity > 0 {
		logLiquidity = math.Log10(liquidity)
		if logLiquidity < 0 {
			logLiquidity = 0
		}
	}

	gasCost, _ := edge.GasCost.Float64()
	return rate*logLiquidity - 0.15*edge.FeePercentage - 0.10*edge.Slippage - 0.05*gasCost
}

// riskScore implements §4.3.4, clamped to [0,1].
func riskScore(hops []Hop) float64 {
	hopCount := len(hops)

	minLiquidity := decimal.Zero
	maxSlippage := 0.0
	dexSet := make(map[string]struct{}, hopCount)
	for i, h := range hops {
		if i == 0 || h.Edge.Liquidity.LessThan(minLiquidity) {
			minLiquidity = h.Edge.Liquidity
		}
		if h.Edge.Slippage > maxSlippage {
			maxSlippage = h.Edge.Slippage
		}
		dexSet[strings.ToLower(h.Edge.Dex)] = struct{}{}
	}

	liquidityPenalty := 0.0
	minLiquidityF, _ := minLiquidity.Float64()
	switch {
	case minLiquidityF < 1e4:
		liquidityPenalty = 0.3
	case minLiquidityF < 1e5:
		liquidityPenalty = 0.1
	}

	dexDiversityPenalty := 0.0
	if len(dexSet) == 1 && hopCount > 2 {
		dexDiversityPenalty = 0.2
	}

	risk := 0.1*float64(hopCount) + liquidityPenalty + 2*maxSlippage + dexDiversityPenalty
	if risk < 0 {
		return 0
	}
	if risk > 1 {
		return 1
	}
	return risk
}

// executionTimeEstimate implements §4.3.5, in whole seconds.
func executionTimeEstimate(hops []Hop) int {
	total := 15 + 5*len(hops)
	for _, h := range hops {
		total += perHopDelay(h.Edge.Dex)
	}
	return total
}

func perHopDelay(dex string) int {
	d := strings.ToLower(dex)
	switch {
	case strings.Contains(d, "uniswap"):
		return 3
	case strings.Contains(d, "curve"):
		return 5
	case strings.Contains(d, "balancer"):
		return 7
	default:
		return 4
	}
}

// buildChain implements §4.3.3 chain construction.
func buildChain(startToken string, hops []Hop, finalAmount decimal.Decimal) Chain {
	initial := decimal.NewFromInt(1)

	totalGas := decimal.Zero
	totalFees := decimal.Zero
	if n := len(hops); n > 0 {
		totalGas = hops[n-1].CumulativeGas
		totalFees = hops[n-1].CumulativeFees
	}

	totalProfit := finalAmount.Sub(initial)
	netProfit := totalProfit.Sub(totalGas)
	profitPercentageF, _ := netProfit.Div(initial).Mul(decimal.NewFromInt(100)).Float64()

	chain := Chain{
		StartToken:            startToken,
		Hops:                  hops,
		InitialAmount:         initial,
		FinalAmount:           finalAmount,
		TotalProfit:           totalProfit,
		TotalGasCost:          totalGas,
		TotalFees:             totalFees,
		NetProfit:             netProfit,
		ProfitPercentage:      profitPercentageF,
		RiskScore:             riskScore(hops),
		ExecutionTimeEstimate: executionTimeEstimate(hops),
	}
	return chain
}
