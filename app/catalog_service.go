package app

import (
	"context"
	"sync"
	"time"

	"tirescout/domain/catalog"
	"tirescout/domain/core"
	"tirescout/internal"
	"tirescout/internal/profiling"
	"tirescout/ports"
)

// Snapshot is one cached load of the tire master file together with
// everything the presentation surfaces derive from it at load time.
type Snapshot struct {
	ID          core.SnapshotID        `json:"id"`
	Table       catalog.Table          `json:"-"`
	Facets      catalog.Facets         `json:"facets"`
	Profile     profiling.TableProfile `json:"profile"`
	Stat        ports.SourceStat       `json:"stat"`
	Fingerprint core.Fingerprint       `json:"fingerprint"`
	LoadedAt    core.Timestamp         `json:"loaded_at"`
}

// SearchResult carries one filtered view plus the counts the
// presentation layer shows next to it.
type SearchResult struct {
	Criteria catalog.Criteria `json:"criteria"`
	Rows     catalog.Table    `json:"-"`
	Matched  int              `json:"matched"`
	Total    int              `json:"total"`
	Snapshot *Snapshot        `json:"-"`
}

// DatasetInfo is the snapshot metadata shown in the info panel.
type DatasetInfo struct {
	SnapshotID  core.SnapshotID `json:"snapshot_id"`
	SourcePath  string          `json:"source_path"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []string        `json:"columns"`
	Fingerprint string          `json:"fingerprint"`
	MissingRate float64         `json:"missing_rate"`
	LoadedAt    core.Timestamp  `json:"loaded_at"`
}

// CatalogService owns the snapshot cache. The cache key is the source's
// identity (path, size, modtime): Snapshot revalidates with one Stat
// call and reloads only when the file changed. The cached table is
// immutable and shared read-only across requests.
type CatalogService struct {
	source ports.CatalogSource
	logger *internal.Logger

	mu       sync.RWMutex
	snapshot *Snapshot

	// loadMu serializes reloads so concurrent requests seeing a stale
	// stat trigger a single read.
	loadMu sync.Mutex
}

// NewCatalogService creates a service over a catalog source. Nothing is
// read until Load or Snapshot is called.
func NewCatalogService(source ports.CatalogSource) *CatalogService {
	return &CatalogService{
		source: source,
		logger: internal.NewDefaultLogger(),
	}
}

// Load reads the source unconditionally and replaces the cached
// snapshot. main calls this once at startup and treats an error as
// fatal; the reload endpoint calls it on demand.
func (s *CatalogService) Load(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.reload(ctx)
}

// Snapshot returns the cached snapshot, reloading first when the source
// file changed since it was read. A Stat failure with a warm cache is
// logged and the cached table keeps serving; without one it is an error.
func (s *CatalogService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.cached(); snap != nil {
		stat, err := s.source.Stat()
		if err != nil {
			s.logger.Warn("[CatalogService] Source stat failed, serving cached snapshot: %v", err)
			return snap, nil
		}
		if snap.Stat.Same(stat) {
			return snap, nil
		}
		s.logger.Info("[CatalogService] Source changed (was %s, now %s), reloading",
			snap.Stat.ModTime.Format(time.RFC3339), stat.ModTime.Format(time.RFC3339))
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another request may have finished the reload while we waited.
	if snap := s.cached(); snap != nil {
		if stat, err := s.source.Stat(); err == nil && snap.Stat.Same(stat) {
			s.logger.Debug("[CatalogService] Reload already done by a concurrent request")
			return snap, nil
		}
	}
	return s.reload(ctx)
}

// Invalidate drops the cached snapshot; the next access reloads.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	s.logger.Info("[CatalogService] Snapshot cache invalidated")
}

// Search runs the filter pipeline against the current snapshot. The
// result is a derived view; the snapshot's table is untouched.
func (s *CatalogService) Search(ctx context.Context, criteria catalog.Criteria) (*SearchResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := catalog.Apply(snap.Table, criteria)
	return &SearchResult{
		Criteria: criteria,
		Rows:     rows,
		Matched:  rows.Len(),
		Total:    snap.Table.Len(),
		Snapshot: snap,
	}, nil
}

// Facets returns the load-time filter vocabulary.
func (s *CatalogService) Facets(ctx context.Context) (catalog.Facets, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return catalog.Facets{}, err
	}
	return snap.Facets, nil
}

// Profile returns the load-time column profile.
func (s *CatalogService) Profile(ctx context.Context) (profiling.TableProfile, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return profiling.TableProfile{}, err
	}
	return snap.Profile, nil
}

// Info summarizes the current snapshot for the info panel.
func (s *CatalogService) Info(ctx context.Context) (*DatasetInfo, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &DatasetInfo{
		SnapshotID:  snap.ID,
		SourcePath:  snap.Stat.Path,
		RowCount:    snap.Table.Len(),
		ColumnCount: len(catalog.Columns()),
		Columns:     catalog.Columns(),
		Fingerprint: snap.Fingerprint.Short(),
		MissingRate: overallMissingRate(snap.Profile),
		LoadedAt:    snap.LoadedAt,
	}, nil
}

func (s *CatalogService) cached() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// reload performs the actual read. Callers hold loadMu.
func (s *CatalogService) reload(ctx context.Context) (*Snapshot, error) {
	stat, err := s.source.Stat()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	table, fingerprint, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:          core.NewSnapshotID(),
		Table:       table,
		Facets:      catalog.CollectFacets(table),
		Profile:     profiling.ProfileTable(table),
		Stat:        stat,
		Fingerprint: fingerprint,
		LoadedAt:    core.Now(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("[CatalogService] Loaded %d rows from %s in %.2fms (fingerprint %s)",
		table.Len(), stat.Path, float64(time.Since(started).Nanoseconds())/1e6, fingerprint.Short())
	return snap, nil
}

// overallMissingRate averages cell-level missingness across canonical
// columns.
func overallMissingRate(profile profiling.TableProfile) float64 {
	if profile.RowCount == 0 || len(profile.Columns) == 0 {
		return 0
	}
	missing := 0
	for _, cp := range profile.Columns {
		missing += cp.Missing
	}
	return float64(missing) / float64(profile.RowCount*len(profile.Columns))
}
