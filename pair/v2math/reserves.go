// Package v2math derives constant-product (Uniswap V2 style) prices from raw
// reserves, adapted from the big.Int reserve-ratio arithmetic of a basis-point
// AMM calculator to arbitrary-precision decimal so fractional rates survive.
package v2math

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/decimalx"
)

// ErrInvalidReserves is returned when either reserve is not strictly positive.
var ErrInvalidReserves = errors.New("v2math: reserves must be positive")

// ForwardRate returns the price of token1 in token0 terms:
//
//	(reserve1 / 10^decimals1) / (reserve0 / 10^decimals0)
func ForwardRate(reserve0, reserve1 decimal.Decimal, decimals0, decimals1 int) (decimal.Decimal, error) {
	if reserve0.Sign() <= 0 || reserve1.Sign() <= 0 {
		return decimal.Zero, ErrInvalidReserves
	}

	scaled0 := reserve0.Div(decimalx.Pow10(decimals0))
	scaled1 := reserve1.Div(decimalx.Pow10(decimals1))

	if scaled0.Sign() == 0 {
		return decimal.Zero, ErrInvalidReserves
	}
	return scaled1.Div(scaled0), nil
}
