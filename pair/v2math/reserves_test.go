package v2math

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardRate(t *testing.T) {
	tests := []struct {
		name      string
		reserve0  string
		reserve1  string
		decimals0 int
		decimals1 int
		want      string
		wantErr   error
	}{
		{"equal decimals double price", "1000", "2000", 0, 0, "2", nil},
		{"mismatched decimals", "1000000000000000000000", "2000000000", 18, 6, "2", nil},
		{"zero reserve0 rejected", "0", "100", 18, 18, "", ErrInvalidReserves},
		{"zero reserve1 rejected", "100", "0", 18, 18, "", ErrInvalidReserves},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r0, err := decimal.NewFromString(tc.reserve0)
			require.NoError(t, err)
			r1, err := decimal.NewFromString(tc.reserve1)
			require.NoError(t, err)

			got, err := ForwardRate(r0, r1, tc.decimals0, tc.decimals1)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			want, err := decimal.NewFromString(tc.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s want %s", got.String(), want.String())
		})
	}
}
