package ports

import (
	"datascope/domain/core"
	"datascope/domain/table"
)

// DatasetStore is the keyed home of every ingested dataset. Ingest must be
// atomic: a failed parse publishes nothing and issues no identifier.
// Implementations bound resident datasets with an explicit eviction policy.
type DatasetStore interface {
	Ingest(filename string, raw []byte) (*table.Dataset, error)
	Lookup(id core.DatasetID) (*table.Dataset, error)
	Evict(id core.DatasetID) bool
	List() []table.Meta
}
