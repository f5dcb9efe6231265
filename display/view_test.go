package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexgraph/arbiscan/pair"
)

func TestViewAppliesMessagesInOrder(t *testing.T) {
	var v View
	v.Apply(FullUpdate([]Row{{Rank: 1, Pair: "A/B"}, {Rank: 2, Pair: "B/C"}}))
	v.Apply(PartialUpdate(1, Row{Rank: 2, Pair: "B/C", Price: "1.5"}))

	rows := v.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "1.5", rows[1].Price)
}

func TestViewPartialUpdateOutOfRangeIsNoOp(t *testing.T) {
	var v View
	v.Apply(FullUpdate([]Row{{Rank: 1}}))
	v.Apply(PartialUpdate(5, Row{Rank: 99}))

	assert.Len(t, v.Rows(), 1)
	assert.Equal(t, 1, v.Rows()[0].Rank)
}

func TestViewBatchPartialUpdateAppliesInOrder(t *testing.T) {
	var v View
	v.Apply(FullUpdate([]Row{{}, {}, {}}))
	v.Apply(BatchPartialUpdate([]RowUpdate{
		{Index: 0, Row: Row{Pair: "first"}},
		{Index: 2, Row: Row{Pair: "third"}},
	}))

	rows := v.Rows()
	assert.Equal(t, "first", rows[0].Pair)
	assert.Equal(t, "third", rows[2].Pair)
}

func TestViewShutdownStopsConsumer(t *testing.T) {
	ch := make(chan Message, DefaultCapacity)
	ch <- FullUpdate([]Row{{Pair: "A/B"}})
	ch <- Shutdown()
	close(ch)

	rows := Consume(ch)
	require.Len(t, rows, 1)
	assert.Equal(t, "A/B", rows[0].Pair)
}

func TestRowFromRecordFallsBackOnPriceFailure(t *testing.T) {
	rec := pair.Record{
		ID:           "p1",
		Dex:          "curve",
		ProtocolType: pair.ProtocolAMMV3,
		Token0:       pair.Token{Symbol: "A", Decimals: "18"},
		Token1:       pair.Token{Symbol: "B", Decimals: "18"},
		ReserveUSD:   "1000",
	}

	row := RowFromRecord(1, rec)
	assert.Equal(t, "-", row.Price)
	assert.Equal(t, "A/B", row.Pair)
}
