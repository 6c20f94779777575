package engine

import (
	"sync"
)

// Store is a process-wide read-through cache over the CSV loader. The files
// are read-only, so the first successful parse is kept for the life of the
// process; a failed load is not cached and the next request retries.
type Store struct {
	dir string

	mu    sync.Mutex
	ds    *Dataset
	joins *Joins
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Snapshot returns the cached dataset and its join maps, loading them on
// first use. Concurrent callers share a single load.
func (s *Store) Snapshot() (*Dataset, *Joins, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ds == nil {
		ds, err := LoadDataset(s.dir)
		if err != nil {
			return nil, nil, err
		}
		s.ds = ds
		s.joins = BuildJoins(ds)
	}
	return s.ds, s.joins, nil
}

// Ready reports whether the cache is warm, without triggering a load.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds != nil
}
