// Package testkit provides fixtures for exercising the catalog stack
// without touching the filesystem.
package testkit

import (
	"context"
	"sync"
	"time"

	"tirescout/domain/catalog"
	"tirescout/domain/core"
	"tirescout/ports"
)

// SampleRows returns a small tire catalog covering every filter path:
// repeated brands and compounds, a composite position label, a row with
// an empty Model and part numbers that overlap note text.
func SampleRows() []catalog.Row {
	return []catalog.Row{
		{Brand: "NSR", Model: "Audi R8 LMS", Compound: "Silicone", TirePart: "NSR-5232", ODmm: "20.5", Widthmm: "11.0", Position: "Rear", Notes: "Low profile slick", Source: "NSR catalog"},
		{Brand: "Policar", Model: "Porsche 917K", Compound: "Rubber", TirePart: "P917-T1", ODmm: "21.0", Widthmm: "12.0", Position: "Front/Rear", Notes: "Vintage tread pattern", Source: "Policar sheet"},
		{Brand: "Scalextric", Model: "BMW M4 Coupe", Compound: "Rubber", TirePart: "SC-4401", ODmm: "19.8", Widthmm: "10.5", Position: "Front", Notes: "Stock replacement", Source: "Scalextric manual"},
		{Brand: "Slot.it", Model: "Audi R8C", Compound: "Urethane", TirePart: "SI-PT18", ODmm: "20.0", Widthmm: "11.5", Position: "Rear", Notes: "Grips like the 917 mold", Source: "Slot.it wiki"},
		{Brand: "NSR", Model: "", Compound: "Silicone", TirePart: "NSR-5220", ODmm: "19.5", Widthmm: "10.0", Position: "Front", Notes: "", Source: "NSR catalog"},
	}
}

// SampleTable wraps SampleRows in an immutable table.
func SampleTable() catalog.Table {
	return catalog.NewTable(SampleRows())
}

// SampleCSV is the same fixture as raw CSV content for loader-level tests.
func SampleCSV() string {
	return "Brand,Model,Compound,Tire_Part,OD_mm,Width_mm,Position,Notes,Source\n" +
		"NSR,Audi R8 LMS,Silicone,NSR-5232,20.5,11.0,Rear,Low profile slick,NSR catalog\n" +
		"Policar,Porsche 917K,Rubber,P917-T1,21.0,12.0,Front/Rear,Vintage tread pattern,Policar sheet\n" +
		"Scalextric,BMW M4 Coupe,Rubber,SC-4401,19.8,10.5,Front,Stock replacement,Scalextric manual\n" +
		"Slot.it,Audi R8C,Urethane,SI-PT18,20.0,11.5,Rear,Grips like the 917 mold,Slot.it wiki\n" +
		"NSR,,Silicone,NSR-5220,19.5,10.0,Front,,NSR catalog\n"
}

// FakeSource implements ports.CatalogSource in memory. Its stat is
// mutable so cache revalidation and invalidation paths can be driven
// from tests.
type FakeSource struct {
	mu          sync.Mutex
	table       catalog.Table
	fingerprint core.Fingerprint
	stat        ports.SourceStat
	loadErr     error
	statErr     error
	loadCalls   int
	statCalls   int
}

// NewFakeSource seeds a fake source with a table and a stable identity.
func NewFakeSource(table catalog.Table) *FakeSource {
	return &FakeSource{
		table:       table,
		fingerprint: core.NewFingerprint([]byte("fake-source-v1")),
		stat: ports.SourceStat{
			Path:    "testdata/Tire_master.csv",
			Size:    int64(table.Len()),
			ModTime: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

// Load returns the seeded table, honoring an injected failure.
func (f *FakeSource) Load(ctx context.Context) (catalog.Table, core.Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Table{}, "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return catalog.Table{}, "", f.loadErr
	}
	return f.table, f.fingerprint, nil
}

// Stat returns the fake identity, honoring an injected failure.
func (f *FakeSource) Stat() (ports.SourceStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statCalls++
	if f.statErr != nil {
		return ports.SourceStat{}, f.statErr
	}
	return f.stat, nil
}

// Replace swaps the table and bumps the modtime, simulating an edited
// source file.
func (f *FakeSource) Replace(table catalog.Table) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table = table
	f.fingerprint = core.NewFingerprint([]byte(time.Now().String()))
	f.stat.Size = int64(table.Len())
	f.stat.ModTime = f.stat.ModTime.Add(time.Minute)
}

// Touch bumps the modtime without changing content.
func (f *FakeSource) Touch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stat.ModTime = f.stat.ModTime.Add(time.Minute)
}

// FailLoads makes subsequent Load calls return err (nil restores).
func (f *FakeSource) FailLoads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErr = err
}

// FailStats makes subsequent Stat calls return err (nil restores).
func (f *FakeSource) FailStats(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statErr = err
}

// LoadCalls reports how many times Load ran.
func (f *FakeSource) LoadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadCalls
}

// StatCalls reports how many times Stat ran.
func (f *FakeSource) StatCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statCalls
}
