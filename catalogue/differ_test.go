package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dexgraph/arbiscan/pair"
)

func rec(id, reserve0 string) pair.Record {
	return pair.Record{ID: id, Reserve0: reserve0, Reserve1: "100"}
}

func TestDifferAdditionsUpdatesDeletions(t *testing.T) {
	old := []pair.Record{rec("a", "100"), rec("b", "200")}
	next := []pair.Record{rec("b", "250"), rec("c", "300")}

	diff := Differ(old, next)

	assert.Len(t, diff.Additions, 1)
	assert.Equal(t, "c", diff.Additions[0].ID)

	assert.Len(t, diff.Updates, 1)
	assert.Equal(t, "b", diff.Updates[0].ID)

	assert.Len(t, diff.Deletions, 1)
	assert.Equal(t, "a", diff.Deletions[0])
}

func TestDifferIsEmptyWhenUnchanged(t *testing.T) {
	snapshot := []pair.Record{rec("a", "100")}
	diff := Differ(snapshot, snapshot)
	assert.True(t, diff.IsEmpty())
}
