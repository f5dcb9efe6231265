// Package v3tick derives concentrated-liquidity (Uniswap V3 style) prices
// from a Q64.96 sqrt-price or, failing that, a tick exponent on base 1.0001.
// The bit-decomposition shape (square the base, fold it in on set bits) is
// carried over from a big.Int/uint256 sqrt-ratio routine; here it runs
// directly on decimal.Decimal since the result only ever needs to be a price,
// not a fixed-point sqrt-ratio to feed back into on-chain-identical math.
package v3tick

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	MinTick = -887272
	MaxTick = 887272

	// PriceScale bounds the division precision used when inverting a
	// negative-tick price (1 / term). Heuristic-free: callers compare or
	// multiply the result, they don't round-trip it through a wire format.
	PriceScale = 60
)

var (
	ErrTickOutOfBounds      = errors.New("v3tick: tick out of bounds")
	ErrSqrtPriceOutOfBounds = errors.New("v3tick: sqrt price out of bounds")

	// Q96 is the fixed Q64.96 scale constant: 2^96.
	Q96 = decimal.RequireFromString("79228162514264337593543950336")

	minSqrtRatio = uint256.MustFromDecimal("4295128739")
	maxSqrtRatio = uint256.MustFromBig(bigFromDecimalString("1461446703485210103287273052203988822378723970342"))

	base1_0001 = decimal.RequireFromString("1.0001")
)

func bigFromDecimalString(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}

// PriceFromSqrtPriceX96 validates the Q64.96 sqrt-price against the known
// on-chain bounds (matching the min/max sqrt-ratio constants any tick can
// produce) and returns the squared, descaled price: (sqrtPriceX96 / 2^96)^2.
func PriceFromSqrtPriceX96(sqrtPriceX96 decimal.Decimal) (decimal.Decimal, error) {
	if sqrtPriceX96.Sign() <= 0 {
		return decimal.Zero, ErrSqrtPriceOutOfBounds
	}

	raw, err := uint256.FromDecimal(sqrtPriceX96.StringFixed(0))
	if err != nil {
		return decimal.Zero, ErrSqrtPriceOutOfBounds
	}
	if raw.Lt(minSqrtRatio) || raw.Gt(maxSqrtRatio) {
		return decimal.Zero, ErrSqrtPriceOutOfBounds
	}

	s := sqrtPriceX96.Div(Q96)
	return s.Mul(s), nil
}

// PriceAtTick computes 1.0001^tick as an arbitrary-precision decimal via
// binary exponentiation: walk the bits of |tick|, squaring an accumulator
// and folding it into the result wherever a bit is set, then invert for
// negative ticks.
func PriceAtTick(tick int64) (decimal.Decimal, error) {
	if tick < MinTick || tick > MaxTick {
		return decimal.Zero, ErrTickOutOfBounds
	}

	neg := tick < 0
	absTick := tick
	if neg {
		absTick = -tick
	}

	result := decimal.NewFromInt(1)
	term := base1_0001
	for absTick > 0 {
		if absTick&1 == 1 {
			result = result.Mul(term)
		}
		term = term.Mul(term)
		absTick >>= 1
	}

	if neg {
		result = decimal.NewFromInt(1).DivRound(result, PriceScale)
	}
	return result, nil
}
