package pair

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/decimalx"
	"github.com/dexgraph/arbiscan/pair/v2math"
	"github.com/dexgraph/arbiscan/pair/v3tick"
)

// RatePrecision bounds the division precision used when computing a reverse
// rate as the multiplicative inverse of the forward rate.
const RatePrecision = 36

var (
	ErrInvalidReserves = errors.New("pair: invalid reserves")
	ErrInvalidV3State  = errors.New("pair: invalid v3 state")
	ErrZeroPrice       = errors.New("pair: zero price")
	ErrDecimalParse    = errors.New("pair: decimal parse")
)

// ForwardRate returns the price of Token1 in Token0 terms, dispatching to the
// protocol-specific derivation named by rec.ProtocolType.
func ForwardRate(rec Record) (decimal.Decimal, error) {
	switch rec.ProtocolType {
	case ProtocolAMMV2:
		return forwardRateV2(rec)
	case ProtocolAMMV3:
		return forwardRateV3(rec)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown protocol type %q", ErrInvalidReserves, rec.ProtocolType)
	}
}

// ReverseRate is the multiplicative inverse of a forward rate, so the two
// always satisfy forward*reverse == 1 to within RatePrecision.
func ReverseRate(forward decimal.Decimal) (decimal.Decimal, error) {
	if forward.Sign() == 0 {
		return decimal.Zero, ErrZeroPrice
	}
	return decimal.NewFromInt(1).DivRound(forward, RatePrecision), nil
}

func forwardRateV2(rec Record) (decimal.Decimal, error) {
	r0, err := decimal.NewFromString(rec.Reserve0)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: reserve0: %v", ErrDecimalParse, err)
	}
	r1, err := decimal.NewFromString(rec.Reserve1)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: reserve1: %v", ErrDecimalParse, err)
	}
	d0, err := parseDecimals(rec.Token0.Decimals)
	if err != nil {
		return decimal.Zero, err
	}
	d1, err := parseDecimals(rec.Token1.Decimals)
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := v2math.ForwardRate(r0, r1, d0, d1)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidReserves, err)
	}
	return rate, nil
}

func forwardRateV3(rec Record) (decimal.Decimal, error) {
	d0, err := parseDecimals(rec.Token0.Decimals)
	if err != nil {
		return decimal.Zero, err
	}
	d1, err := parseDecimals(rec.Token1.Decimals)
	if err != nil {
		return decimal.Zero, err
	}

	raw, err := rawV3Price(rec)
	if err != nil {
		return decimal.Zero, err
	}

	exp := d0 - d1
	switch {
	case exp > 0:
		raw = raw.Mul(decimalx.Pow10(exp))
	case exp < 0:
		raw = raw.Div(decimalx.Pow10(-exp))
	}

	if raw.Sign() == 0 {
		return decimal.Zero, ErrZeroPrice
	}
	return raw, nil
}

func rawV3Price(rec Record) (decimal.Decimal, error) {
	if rec.SqrtPrice != "" && rec.SqrtPrice != "0" {
		sp, err := decimal.NewFromString(rec.SqrtPrice)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: sqrt_price: %v", ErrDecimalParse, err)
		}
		price, err := v3tick.PriceFromSqrtPriceX96(sp)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidV3State, err)
		}
		return price, nil
	}

	if rec.Tick != "" {
		tick, err := strconv.ParseInt(rec.Tick, 10, 64)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: tick: %v", ErrDecimalParse, err)
		}
		price, err := v3tick.PriceAtTick(tick)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidV3State, err)
		}
		return price, nil
	}

	return decimal.Zero, ErrInvalidV3State
}

func parseDecimals(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: decimals %q", ErrDecimalParse, s)
	}
	return n, nil
}
