package exchangegraph

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// gasCostFor returns the fixed gas-cost estimate for a DEX name, matched
// case-insensitively by substring; first rule to match wins.
func gasCostFor(dex string) decimal.Decimal {
	d := strings.ToLower(dex)
	switch {
	case strings.Contains(d, "uniswap") && strings.Contains(d, "v2"):
		return decimal.NewFromFloat(0.003)
	case strings.Contains(d, "uniswap") && strings.Contains(d, "v3"):
		return decimal.NewFromFloat(0.005)
	case strings.Contains(d, "sushiswap"):
		return decimal.NewFromFloat(0.003)
	case strings.Contains(d, "curve"):
		return decimal.NewFromFloat(0.004)
	case strings.Contains(d, "balancer"):
		return decimal.NewFromFloat(0.006)
	case strings.Contains(d, "pancakeswap"):
		return decimal.NewFromFloat(0.002)
	default:
		return decimal.NewFromFloat(0.003)
	}
}

// feePercentageFor returns the fixed trading-fee estimate for a DEX name,
// matched the same way as gasCostFor.
func feePercentageFor(dex string) float64 {
	d := strings.ToLower(dex)
	switch {
	case strings.Contains(d, "uniswap") && strings.Contains(d, "v2"):
		return 0.003
	case strings.Contains(d, "uniswap") && strings.Contains(d, "v3"):
		return 0.003
	case strings.Contains(d, "sushiswap"):
		return 0.003
	case strings.Contains(d, "curve"):
		return 0.0004
	case strings.Contains(d, "balancer"):
		return 0.001
	case strings.Contains(d, "pancakeswap"):
		return 0.0025
	default:
		return 0.003
	}
}

// slippageFor buckets the reserve_usd liquidity proxy into a fixed slippage
// estimate. Unparseable input is treated as the smallest (least liquid)
// bucket.
func slippageFor(reserveUSD string) float64 {
	f, err := strconv.ParseFloat(reserveUSD, 64)
	if err != nil {
		return 0.03
	}
	switch {
	case f > 1e7:
		return 0.0005
	case f > 1e6:
		return 0.001
	case f > 1e5:
		return 0.005
	case f > 1e4:
		return 0.01
	default:
		return 0.03
	}
}
