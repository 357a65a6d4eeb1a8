package ports

import (
	"context"
	"time"

	"tirescout/domain/catalog"
	"tirescout/domain/core"
)

// CatalogSource provides read access to the tire master file. The
// application layer owns caching; a source only reads and reports the
// identity of what it would read.
type CatalogSource interface {
	// Load reads the whole source into an immutable table. Every call
	// re-reads; callers cache.
	Load(ctx context.Context) (catalog.Table, core.Fingerprint, error)

	// Stat reports the source's identity without reading it, for cache
	// revalidation.
	Stat() (SourceStat, error)
}

// SourceStat identifies one state of a source file. Two equal stats
// mean the cached table is still current.
type SourceStat struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Same reports whether the source looks unchanged.
func (s SourceStat) Same(other SourceStat) bool {
	return s.Path == other.Path &&
		s.Size == other.Size &&
		s.ModTime.Equal(other.ModTime)
}
