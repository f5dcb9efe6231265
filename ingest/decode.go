package ingest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// V2SwapSignature is the topic-0 hash of Swap(address,uint256,uint256,uint256,uint256,address).
var V2SwapSignature = common.HexToHash("0xd78ad95fa46c994b6551d0da85fc275fe613ce37657fb8d5e3d130840159d822")

// V3SwapSignature is the topic-0 hash of Swap(address,address,int256,int256,uint160,uint128,int24).
var V3SwapSignature = common.HexToHash("0xc42079f94a6350d7e6235f29174924f928cc2ac818eb64fed8004e115fbcca67")

// V2Swap is the decoded form of a Uniswap-V2-style Swap event.
type V2Swap struct {
	Pool       common.Address
	Sender     common.Address
	To         common.Address
	Amount0In  *big.Int
	Amount1In  *big.Int
	Amount0Out *big.Int
	Amount1Out *big.Int
}

// V3Swap is the decoded form of a Uniswap-V3-style Swap event.
type V3Swap struct {
	Pool         common.Address
	Sender       common.Address
	Recipient    common.Address
	Amount0      *big.Int
	Amount1      *big.Int
	SqrtPriceX96 *big.Int
	Liquidity    *big.Int
	Tick         int64
}

// decodeV2Swap applies §4.4's V2 log decoding contract: ≥3 topics, ≥128
// bytes of data, four 32-byte big-endian unsigned integers in order.
func decodeV2Swap(log ethtypes.Log) (*V2Swap, error) {
	if len(log.Topics) < 3 {
		return nil, fmt.Errorf("ingest: v2 swap log has %d topics, want >= 3", len(log.Topics))
	}
	if len(log.Data) < 128 {
		return nil, fmt.Errorf("ingest: v2 swap log has %d data bytes, want >= 128", len(log.Data))
	}

	return &V2Swap{
		Pool:       log.Address,
		Sender:     common.BytesToAddress(log.Topics[1].Bytes()),
		To:         common.BytesToAddress(log.Topics[2].Bytes()),
		Amount0In:  new(big.Int).SetBytes(log.Data[0:32]),
		Amount1In:  new(big.Int).SetBytes(log.Data[32:64]),
		Amount0Out: new(big.Int).SetBytes(log.Data[64:96]),
		Amount1Out: new(big.Int).SetBytes(log.Data[96:128]),
	}, nil
}

// decodeV3Swap applies §4.4's V3 log decoding contract: ≥3 topics, ≥160
// bytes of data, signed amount0/amount1, unsigned sqrt_price_x96, unsigned
// 128-bit liquidity, and a signed 24-bit tick read from bytes 156..160.
func decodeV3Swap(log ethtypes.Log) (*V3Swap, error) {
	if len(log.Topics) < 3 {
		return nil, fmt.Errorf("ingest: v3 swap log has %d topics, want >= 3", len(log.Topics))
	}
	if len(log.Data) < 160 {
		return nil, fmt.Errorf("ingest: v3 swap log has %d data bytes, want >= 160", len(log.Data))
	}

	return &V3Swap{
		Pool:         log.Address,
		Sender:       common.BytesToAddress(log.Topics[1].Bytes()),
		Recipient:    common.BytesToAddress(log.Topics[2].Bytes()),
		Amount0:      signed256(log.Data[0:32]),
		Amount1:      signed256(log.Data[32:64]),
		SqrtPriceX96: new(big.Int).SetBytes(log.Data[64:96]),
		Liquidity:    new(big.Int).SetBytes(log.Data[96:112]),
		Tick:         signed24(log.Data[156:160]),
	}, nil
}

// signed256 interprets a 32-byte big-endian word as two's-complement signed.
func signed256(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return v
}

// signed24 interprets a 4-byte big-endian word, sign-extended from its
// original 24-bit width by the ABI encoder, as a signed int64.
func signed24(b []byte) int64 {
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 32))
	}
	return v.Int64()
}
