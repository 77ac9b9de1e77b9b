// Package store holds ingested datasets for the life of the process.
//
// The store is the only write path in the system. A dataset identifier is
// issued and becomes visible to Lookup only after the full parse and
// type-inference pass succeeds; a failed ingest publishes nothing. Resident
// datasets are bounded by both a count ceiling and a combined byte ceiling,
// evicting least-recently-used datasets when either is exceeded.
package store

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"datascope/domain/core"
	"datascope/domain/table"
	"datascope/internal"
	"datascope/internal/errors"
	"datascope/internal/ingest"
)

// Store is a process-scoped, LRU-bounded dataset store.
type Store struct {
	mu       sync.Mutex
	cache    *lru.Cache[core.DatasetID, *table.Dataset]
	maxBytes int64
	resident int64
	log      *internal.Logger
}

// New creates a store bounded by maxDatasets entries and maxBytes of
// estimated resident memory.
func New(maxDatasets int, maxBytes int64, log *internal.Logger) (*Store, error) {
	s := &Store{
		maxBytes: maxBytes,
		log:      log,
	}
	cache, err := lru.NewWithEvict[core.DatasetID, *table.Dataset](maxDatasets, s.onEvict)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dataset cache")
	}
	s.cache = cache
	return s, nil
}

// onEvict runs under s.mu (all cache mutations happen inside locked methods).
func (s *Store) onEvict(id core.DatasetID, ds *table.Dataset) {
	s.resident -= ds.SizeBytes
	s.log.Info("evicted dataset %s (%s, %d bytes)", id, ds.Filename, ds.SizeBytes)
}

// Ingest parses raw delimited text and atomically publishes the resulting
// dataset. On any parse failure no identifier is issued.
func (s *Store) Ingest(filename string, raw []byte) (*table.Dataset, error) {
	ds, err := ingest.Parse(filename, raw)
	if err != nil {
		return nil, err
	}
	s.publish(ds)
	return ds, nil
}

func (s *Store) publish(ds *table.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Add(ds.ID, ds)
	s.resident += ds.SizeBytes

	// Enforce the byte ceiling; the count ceiling is enforced by the cache.
	for s.resident > s.maxBytes && s.cache.Len() > 1 {
		s.cache.RemoveOldest()
	}
}

// Lookup returns a resident dataset or a NOT_FOUND error.
func (s *Store) Lookup(id core.DatasetID) (*table.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.cache.Get(id)
	if !ok {
		return nil, errors.NotFound("dataset", id.String())
	}
	return ds, nil
}

// Evict removes a dataset, reporting whether it was resident.
func (s *Store) Evict(id core.DatasetID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

// List describes the resident datasets, most recently used first.
func (s *Store) List() []table.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.cache.Keys() // oldest to newest
	metas := make([]table.Meta, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if ds, ok := s.cache.Peek(keys[i]); ok {
			metas = append(metas, ds.Meta())
		}
	}
	return metas
}

// Len returns the number of resident datasets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// ResidentBytes returns the estimated combined size of resident datasets.
func (s *Store) ResidentBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resident
}
