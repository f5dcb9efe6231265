// Package catalogue describes the narrow subset of the external pair/token
// store the core consumes (§4.6), plus the small pure helpers — reserve
// string normalization and pair-list diffing — that sit naturally beside it.
package catalogue

import (
	"context"
	"sync"

	"github.com/dexgraph/arbiscan/pair"
)

// Filter narrows a load_pairs_by_filter call. Zero values mean "no filter".
type Filter struct {
	Network string
	Dex     string
	Limit   int
}

// Store is the external collaborator contract: the core never needs more
// than these three operations.
type Store interface {
	LoadPairsByFilter(ctx context.Context, filter Filter) ([]pair.Record, error)
	FindPairByID(ctx context.Context, id string) (pair.Record, bool, error)
	SavePairs(ctx context.Context, pairs []pair.Record) error
}

// MemStore is an in-memory Store used by cmd/finder's demo mode. Writes
// normalize reserve strings exactly as the persisted storage layer is
// specified to (§8.4), so round-tripping through MemStore exercises the same
// contract a real relational store would.
type MemStore struct {
	mu    sync.RWMutex
	pairs map[string]pair.Record
}

// NewMemStore returns an empty in-memory store, optionally pre-seeded.
func NewMemStore(seed ...pair.Record) *MemStore {
	m := &MemStore{pairs: make(map[string]pair.Record, len(seed))}
	for _, rec := range seed {
		m.pairs[rec.ID] = normalizeRecord(rec)
	}
	return m
}

func (m *MemStore) LoadPairsByFilter(_ context.Context, filter Filter) ([]pair.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]pair.Record, 0, len(m.pairs))
	for _, rec := range m.pairs {
		if filter.Network != "" && rec.Network != filter.Network {
			continue
		}
		if filter.Dex != "" && rec.Dex != filter.Dex {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemStore) FindPairByID(_ context.Context, id string) (pair.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.pairs[id]
	return rec, ok, nil
}

func (m *MemStore) SavePairs(_ context.Context, pairs []pair.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range pairs {
		m.pairs[rec.ID] = normalizeRecord(rec)
	}
	return nil
}

func normalizeRecord(rec pair.Record) pair.Record {
	rec.Reserve0 = NormalizeReserve(rec.Reserve0)
	rec.Reserve1 = NormalizeReserve(rec.Reserve1)
	return rec
}
