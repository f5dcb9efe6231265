package catalogue

import (
	"github.com/dexgraph/arbiscan/exchangegraph"
	"github.com/dexgraph/arbiscan/pair"
)

// GraphWriter is the subset of *exchangegraph.Graph a GraphSyncer needs.
type GraphWriter interface {
	UpsertPair(rec pair.Record) error
	RemovePair(pairID string)
}

// GraphSyncer applies a PairDiff onto the Exchange Graph. Unlike the generic
// multi-protocol state patcher it is adapted from, there is no separate
// "structural sharing" copy step here: the graph's own UpsertPair/RemovePair
// already mutate in place under their own lock, so syncing a diff is just
// replaying it through that existing contract.
type GraphSyncer struct {
	graph GraphWriter
}

// NewGraphSyncer returns a syncer bound to graph.
func NewGraphSyncer(graph GraphWriter) *GraphSyncer {
	return &GraphSyncer{graph: graph}
}

// Apply replays diff onto the graph: additions and updates upsert, deletions
// remove. It returns the number of records that failed to upsert; it never
// aborts partway through a diff.
func (s *GraphSyncer) Apply(diff PairDiff) int {
	failures := 0
	for _, rec := range diff.Additions {
		if err := s.graph.UpsertPair(rec); err != nil {
			failures++
		}
	}
	for _, rec := range diff.Updates {
		if err := s.graph.UpsertPair(rec); err != nil {
			failures++
		}
	}
	for _, id := range diff.Deletions {
		s.graph.RemovePair(id)
	}
	return failures
}
