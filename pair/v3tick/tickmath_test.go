package v3tick

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceAtTickZeroIsOne(t *testing.T) {
	price, err := PriceAtTick(0)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1)))
}

func TestPriceAtTickIsMultiplicativeInverseAcrossSign(t *testing.T) {
	pos, err := PriceAtTick(1000)
	require.NoError(t, err)
	neg, err := PriceAtTick(-1000)
	require.NoError(t, err)

	product := pos.Mul(neg)
	diff := product.Sub(decimal.NewFromInt(1)).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(1e-30)), "product %s should be ~1", product.String())
}

func TestPriceAtTickRejectsOutOfBounds(t *testing.T) {
	_, err := PriceAtTick(MaxTick + 1)
	assert.ErrorIs(t, err, ErrTickOutOfBounds)

	_, err = PriceAtTick(MinTick - 1)
	assert.ErrorIs(t, err, ErrTickOutOfBounds)
}

func TestPriceFromSqrtPriceX96AtParity(t *testing.T) {
	price, err := PriceFromSqrtPriceX96(Q96)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1)))
}

func TestPriceFromSqrtPriceX96RejectsZero(t *testing.T) {
	_, err := PriceFromSqrtPriceX96(decimal.Zero)
	assert.ErrorIs(t, err, ErrSqrtPriceOutOfBounds)
}
