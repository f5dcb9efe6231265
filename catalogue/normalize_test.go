package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReserve(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"123.456", "123456"},
		{"0.001", "1"},
		{"0", "0"},
		{"1000.0", "1000"},
		{"000123.4500", "12345"},
		{"", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeReserve(tc.in))
		})
	}
}
