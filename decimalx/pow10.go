// Package decimalx holds small arbitrary-precision decimal helpers shared
// across the pair, exchangegraph and chainfinder packages.
package decimalx

import "github.com/shopspring/decimal"

var table [19]decimal.Decimal

func init() {
	table[0] = decimal.NewFromInt(1)
	ten := decimal.NewFromInt(10)
	for i := 1; i < len(table); i++ {
		table[i] = table[i-1].Mul(ten)
	}
}

// Pow10 returns 10^k as an exact decimal. Direct table lookup for k <= 18;
// repeated multiplication above that rather than a native exponent, so large
// decimal exponents never round through a float or overflow a machine word.
func Pow10(k int) decimal.Decimal {
	if k < 0 {
		panic("decimalx: Pow10 requires a non-negative exponent")
	}
	if k < len(table) {
		return table[k]
	}
	result := table[len(table)-1]
	ten := decimal.NewFromInt(10)
	for i := len(table); i <= k; i++ {
		result = result.Mul(ten)
	}
	return result
}
