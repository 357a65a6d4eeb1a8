package tabular

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"tirescout/domain/catalog"
)

func exportFixture() catalog.Table {
	return catalog.NewTable([]catalog.Row{
		{Brand: "NSR", Model: "Audi R8 LMS", Compound: "Silicone", TirePart: "NSR-5232", ODmm: "20.5", Widthmm: "11.0", Position: "Rear", Notes: "Low profile slick", Source: "NSR catalog"},
		{Brand: "Policar", Model: "Porsche 917K", Compound: "Rubber", TirePart: "P917-T1", ODmm: "21.0", Widthmm: "12.0", Position: "Front/Rear", Notes: "Vintage tread pattern", Source: "Policar sheet"},
		{Brand: "Scalextric", Model: "BMW M4 Coupe", Compound: "Rubber", TirePart: "SC-4401", ODmm: "19.8", Widthmm: "10.5", Position: "Front", Notes: "Stock replacement", Source: "Scalextric manual"},
	})
}

func TestWriteCSVHeaderAndOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportFixture()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV failed to parse: %v", err)
	}

	// Header is the canonical display order; there is no index column.
	if !reflect.DeepEqual(records[0], catalog.Columns()) {
		t.Errorf("Expected header %v, got %v", catalog.Columns(), records[0])
	}
	if records[1][0] != "NSR" {
		t.Errorf("Expected first data cell to be the Brand value, got %q", records[1][0])
	}
	if len(records) != 4 {
		t.Errorf("Expected header plus 3 rows, got %d records", len(records))
	}
}

func TestWriteCSVRoundTripsFilteredView(t *testing.T) {
	table := exportFixture()
	filtered := catalog.Apply(table, catalog.Criteria{Compounds: []string{"Rubber"}})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, filtered); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV failed to parse: %v", err)
	}

	reparsed := make([]catalog.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		fields := make(map[string]string, len(record))
		for i, column := range records[0] {
			fields[column] = record[i]
		}
		reparsed = append(reparsed, catalog.NewRow(fields))
	}

	if !catalog.NewTable(reparsed).Equal(filtered) {
		t.Errorf("Round trip changed the filtered view: %+v vs %+v", reparsed, filtered.Rows())
	}
}

func TestWriteCSVEmptyTableHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, catalog.NewTable(nil)); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV failed to parse: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected header only, got %d records", len(records))
	}
}
