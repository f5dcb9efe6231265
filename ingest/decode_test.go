package ingest

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(n int64) []byte {
	b := make([]byte, 32)
	big.NewInt(n).FillBytes(b)
	return b
}

func negWord(n int64) []byte {
	v := new(big.Int).Lsh(big.NewInt(1), 256)
	v.Sub(v, big.NewInt(n))
	b := make([]byte, 32)
	v.FillBytes(b)
	return b
}

func TestDecodeV2SwapReadsFourAmountsInOrder(t *testing.T) {
	data := append(append(append(word(10), word(0)...), word(0)...), word(20)...)
	log := ethtypes.Log{
		Address: common.HexToAddress("0x1000000000000000000000000000000000000001"),
		Topics: []common.Hash{
			V2SwapSignature,
			common.HexToHash("0x0000000000000000000000002000000000000000000000000000000000000002"),
			common.HexToHash("0x0000000000000000000000003000000000000000000000000000000000000003"),
		},
		Data: data,
	}

	swap, err := decodeV2Swap(log)
	require.NoError(t, err)
	assert.Equal(t, int64(10), swap.Amount0In.Int64())
	assert.Equal(t, int64(0), swap.Amount1In.Int64())
	assert.Equal(t, int64(0), swap.Amount0Out.Int64())
	assert.Equal(t, int64(20), swap.Amount1Out.Int64())
}

func TestDecodeV2SwapRejectsShortData(t *testing.T) {
	log := ethtypes.Log{
		Topics: []common.Hash{V2SwapSignature, common.Hash{}, common.Hash{}},
		Data:   word(1),
	}
	_, err := decodeV2Swap(log)
	assert.Error(t, err)
}

func TestDecodeV2SwapRejectsTooFewTopics(t *testing.T) {
	log := ethtypes.Log{
		Topics: []common.Hash{V2SwapSignature},
		Data:   append(append(append(word(1), word(1)...), word(1)...), word(1)...),
	}
	_, err := decodeV2Swap(log)
	assert.Error(t, err)
}

func TestDecodeV3SwapHandlesNegativeAmountsAndTick(t *testing.T) {
	q96, _ := new(big.Int).SetString("79228162514264337593543950336", 10)
	q96Bytes := make([]byte, 32)
	q96.FillBytes(q96Bytes)

	var data []byte
	data = append(data, negWord(500)...) // amount0 = -500 (token0 left the pool)
	data = append(data, word(1000)...)   // amount1 = 1000
	data = append(data, q96Bytes...)     // sqrtPriceX96 = Q96
	liquidity := make([]byte, 16)
	big.NewInt(42).FillBytes(liquidity)
	data = append(data, liquidity...)
	data = append(data, make([]byte, 44)...) // padding up to byte 156
	tickValue := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 32), big.NewInt(100))
	tickWord := make([]byte, 4)
	tickValue.FillBytes(tickWord)
	data = append(data, tickWord...)

	log := ethtypes.Log{
		Address: common.HexToAddress("0x1000000000000000000000000000000000000001"),
		Topics: []common.Hash{
			V3SwapSignature,
			common.HexToHash("0x0000000000000000000000002000000000000000000000000000000000000002"),
			common.HexToHash("0x0000000000000000000000004000000000000000000000000000000000000004"),
		},
		Data: data,
	}

	swap, err := decodeV3Swap(log)
	require.NoError(t, err)
	assert.Equal(t, int64(-500), swap.Amount0.Int64())
	assert.Equal(t, int64(1000), swap.Amount1.Int64())
	assert.Equal(t, int64(42), swap.Liquidity.Int64())
	assert.Equal(t, int64(-100), swap.Tick)
}

func TestDecodeV3SwapRejectsShortData(t *testing.T) {
	log := ethtypes.Log{
		Topics: []common.Hash{V3SwapSignature, common.Hash{}, common.Hash{}},
		Data:   word(1),
	}
	_, err := decodeV3Swap(log)
	assert.Error(t, err)
}
