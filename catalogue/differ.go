package catalogue

import "github.com/dexgraph/arbiscan/pair"

// PairDiff is the result of diffing two pair-record snapshots, keyed by the
// pair's stable id. The map-then-compare shape is carried over from the
// Uniswap V2/V3 pool differs, generalized from a numeric pool ID to the
// catalogue's string pair id and from a reserve-only comparison to every
// field §3 says upsert_pair refreshes.
type PairDiff struct {
	Additions []pair.Record
	Updates   []pair.Record
	Deletions []string
}

// IsEmpty reports whether the diff carries any change at all.
func (d PairDiff) IsEmpty() bool {
	return len(d.Additions) == 0 && len(d.Updates) == 0 && len(d.Deletions) == 0
}

// Differ computes the additions/updates/deletions between an old and a new
// snapshot of pair records.
func Differ(old, next []pair.Record) PairDiff {
	oldByID := make(map[string]pair.Record, len(old))
	for _, rec := range old {
		oldByID[rec.ID] = rec
	}
	newByID := make(map[string]pair.Record, len(next))
	for _, rec := range next {
		newByID[rec.ID] = rec
	}

	var diff PairDiff
	for id, newRec := range newByID {
		oldRec, existed := oldByID[id]
		if !existed {
			diff.Additions = append(diff.Additions, newRec)
			continue
		}
		if recordChanged(oldRec, newRec) {
			diff.Updates = append(diff.Updates, newRec)
		}
	}
	for id := range oldByID {
		if _, stillPresent := newByID[id]; !stillPresent {
			diff.Deletions = append(diff.Deletions, id)
		}
	}
	return diff
}

func recordChanged(a, b pair.Record) bool {
	return a.Reserve0 != b.Reserve0 ||
		a.Reserve1 != b.Reserve1 ||
		a.ReserveUSD != b.ReserveUSD ||
		a.SqrtPrice != b.SqrtPrice ||
		a.Tick != b.Tick ||
		a.FeeTier != b.FeeTier
}
