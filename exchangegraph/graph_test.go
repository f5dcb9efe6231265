package exchangegraph

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexgraph/arbiscan/pair"
)

func v2Pair(id, dex, reserve0, reserve1, reserveUSD string) pair.Record {
	return pair.Record{
		ID:           id,
		Network:      "ethereum",
		Dex:          dex,
		ProtocolType: pair.ProtocolAMMV2,
		Token0:       pair.Token{Symbol: "A", Decimals: "18"},
		Token1:       pair.Token{Symbol: "B", Decimals: "18"},
		Reserve0:     reserve0,
		Reserve1:     reserve1,
		ReserveUSD:   reserveUSD,
	}
}

func TestUpsertPairCreatesForwardAndReverseEdge(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.UpsertPair(v2Pair("p1", "uniswap v2", "1000", "2000", "1000000")))

	forward := g.EdgesFrom("A")
	require.Len(t, forward, 1)
	assert.Equal(t, "p1", forward[0].PairID)
	assert.Equal(t, "B", forward[0].ToToken)

	reverse := g.EdgesFrom("B")
	require.Len(t, reverse, 1)
	assert.Equal(t, "p1", reverse[0].PairID)
	assert.Equal(t, "A", reverse[0].ToToken)

	product := forward[0].ExchangeRate.Mul(reverse[0].ExchangeRate)
	assert.True(t, product.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.NewFromFloat(1e-20)))
}

func TestRemovePairPurgesEmptyVertices(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.UpsertPair(v2Pair("p1", "uniswap v2", "1000", "2000", "1000000")))

	g.RemovePair("p1")

	assert.Empty(t, g.EdgesFrom("A"))
	assert.Empty(t, g.EdgesFrom("B"))
	stats := g.Stats()
	assert.Equal(t, 0, stats.TokenCount)
	assert.Equal(t, 0, stats.EdgeCount)
}

func TestUpsertPairIsStableAcrossRefresh(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.UpsertPair(v2Pair("p1", "sushiswap", "1000", "2000", "1000000")))
	require.NoError(t, g.UpsertPair(v2Pair("p0", "sushiswap", "500", "700", "1000000")))

	edgesBefore := g.EdgesFrom("A")
	require.Len(t, edgesBefore, 2)
	indexOfP1 := -1
	for i, e := range edgesBefore {
		if e.PairID == "p1" {
			indexOfP1 = i
		}
	}
	require.NotEqual(t, -1, indexOfP1)

	require.NoError(t, g.UpsertPair(v2Pair("p1", "sushiswap", "1000", "4000", "1000000")))

	edgesAfter := g.EdgesFrom("A")
	require.Len(t, edgesAfter, 2)
	assert.Equal(t, "p1", edgesAfter[indexOfP1].PairID)
	assert.False(t, edgesAfter[indexOfP1].ExchangeRate.Equal(edgesBefore[indexOfP1].ExchangeRate))
}

func TestUpsertPairRejectsV3MissingState(t *testing.T) {
	g := New(nil)
	rec := pair.Record{
		ID:           "p2",
		Dex:          "uniswap v3",
		ProtocolType: pair.ProtocolAMMV3,
		Token0:       pair.Token{Symbol: "A", Decimals: "18"},
		Token1:       pair.Token{Symbol: "B", Decimals: "18"},
		ReserveUSD:   "1000000",
	}

	err := g.UpsertPair(rec)
	assert.Error(t, err)

	stats := g.Stats()
	assert.Equal(t, 0, stats.TokenCount)
	assert.Equal(t, 0, stats.EdgeCount)
}

func TestBuildFromSkipsInvalidPairsButKeepsValidOnes(t *testing.T) {
	g := New(nil)
	bad := v2Pair("bad", "curve", "0", "100", "1000000")
	good := v2Pair("good", "curve", "100", "200", "1000000")

	inserted := g.BuildFrom([]pair.Record{bad, good})
	assert.Equal(t, 2, inserted)

	stats := g.Stats()
	assert.Equal(t, 2, stats.TokenCount)
	assert.Equal(t, 2, stats.EdgeCount)
}

func TestHasDirectPath(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.UpsertPair(v2Pair("p1", "curve", "100", "200", "1000000")))

	assert.True(t, g.HasDirectPath("A", "B"))
	assert.False(t, g.HasDirectPath("A", "C"))
}

func TestEnrichmentTables(t *testing.T) {
	assert.True(t, gasCostFor("Uniswap V2").Equal(gasCostFor("UNISWAP v2")))
	assert.True(t, gasCostFor("Uniswap V3").Equal(decimal.NewFromFloat(0.005)))
	assert.Equal(t, 0.0004, feePercentageFor("Curve.fi"))
	assert.Equal(t, 0.0005, slippageFor("20000000"))
	assert.Equal(t, 0.03, slippageFor("not-a-number"))
}
