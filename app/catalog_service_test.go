package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tirescout/domain/catalog"
	"tirescout/internal/testkit"
)

func TestLoadBuildsSnapshot(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	service := NewCatalogService(source)

	snap, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.False(t, snap.ID.String() == "", "snapshot should carry an ID")
	assert.Equal(t, 5, snap.Table.Len())
	assert.Equal(t, []string{"Rubber", "Silicone", "Urethane"}, snap.Facets.Compounds)
	assert.NotEmpty(t, snap.Fingerprint)
	assert.False(t, snap.LoadedAt.IsZero())
	assert.Equal(t, 5, snap.Profile.RowCount)
}

func TestSnapshotCachesUntilSourceChanges(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	service := NewCatalogService(source)

	first, err := service.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, source.LoadCalls(), "unchanged source should load once")
	assert.Equal(t, first.ID, second.ID)

	source.Touch()
	third, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, source.LoadCalls(), "modtime change should trigger a reload")
	assert.NotEqual(t, first.ID, third.ID)
}

func TestSnapshotReloadPicksUpNewRows(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	service := NewCatalogService(source)

	_, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	source.Replace(catalog.NewTable(testkit.SampleRows()[:2]))
	snap, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Table.Len())
	assert.Equal(t, []string{"NSR", "Policar"}, snap.Facets.Brands)
}

func TestInvalidateForcesReload(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	service := NewCatalogService(source)

	_, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	service.Invalidate()
	_, err = service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, source.LoadCalls(), "invalidation should force a reload")
}

func TestSnapshotServesCacheWhenStatFails(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	service := NewCatalogService(source)

	first, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	source.FailStats(fmt.Errorf("file vanished"))
	second, err := service.Snapshot(context.Background())
	require.NoError(t, err, "a warm cache should keep serving when stat fails")
	assert.Equal(t, first.ID, second.ID)
}

func TestSnapshotFailsColdWithBrokenSource(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	source.FailStats(fmt.Errorf("no such file"))
	service := NewCatalogService(source)

	_, err := service.Snapshot(context.Background())
	require.Error(t, err, "no cache plus broken source is an error")
}

func TestLoadSurfacesReadErrors(t *testing.T) {
	source := testkit.NewFakeSource(testkit.SampleTable())
	source.FailLoads(fmt.Errorf("corrupt file"))
	service := NewCatalogService(source)

	_, err := service.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt file")
}

func TestSearchAppliesCriteria(t *testing.T) {
	service := NewCatalogService(testkit.NewFakeSource(testkit.SampleTable()))

	result, err := service.Search(context.Background(), catalog.Criteria{Compounds: []string{"Rubber"}})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 5, result.Total)
	for _, row := range result.Rows.Rows() {
		assert.Equal(t, "Rubber", row.Compound)
	}
}

func TestSearchUnrestrictedReturnsWholeTable(t *testing.T) {
	service := NewCatalogService(testkit.NewFakeSource(testkit.SampleTable()))

	result, err := service.Search(context.Background(), catalog.Criteria{})
	require.NoError(t, err)

	assert.Equal(t, result.Total, result.Matched)
	assert.True(t, result.Rows.Equal(testkit.SampleTable()))
}

func TestSearchDoesNotMutateSnapshot(t *testing.T) {
	service := NewCatalogService(testkit.NewFakeSource(testkit.SampleTable()))

	_, err := service.Search(context.Background(), catalog.Criteria{Brand: "NSR"})
	require.NoError(t, err)

	snap, err := service.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Table.Len(), "filtering must not narrow the cached table")
}

func TestInfoSummarizesSnapshot(t *testing.T) {
	service := NewCatalogService(testkit.NewFakeSource(testkit.SampleTable()))

	info, err := service.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, info.RowCount)
	assert.Equal(t, 9, info.ColumnCount)
	assert.Equal(t, catalog.Columns(), info.Columns)
	assert.Equal(t, "testdata/Tire_master.csv", info.SourcePath)
	assert.NotEmpty(t, info.Fingerprint)
	// Two of 45 cells are empty in the fixture.
	assert.InDelta(t, 2.0/45.0, info.MissingRate, 1e-9)
}

func TestFacetsComeFromSnapshot(t *testing.T) {
	service := NewCatalogService(testkit.NewFakeSource(testkit.SampleTable()))

	facets, err := service.Facets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"NSR", "Policar", "Scalextric", "Slot.it"}, facets.Brands)
	assert.Equal(t, []string{"Front", "Front/Rear", "Rear"}, facets.Positions)
}
