package catalog

import (
	"reflect"
	"testing"
)

func TestRowFieldUnknownColumnReadsEmpty(t *testing.T) {
	row := Row{Brand: "NSR", Model: "Audi R8 LMS"}

	tests := []struct {
		column string
		want   string
	}{
		{ColBrand, "NSR"},
		{ColModel, "Audi R8 LMS"},
		{ColNotes, ""},
		{"Diameter_in", ""},
		{"", ""},
		{"brand", ""}, // column names are exact
	}

	for _, test := range tests {
		if got := row.Field(test.column); got != test.want {
			t.Errorf("Field(%q): expected %q, got %q", test.column, test.want, got)
		}
	}
}

func TestRowValuesFollowColumnOrder(t *testing.T) {
	row := Row{
		Brand:    "Policar",
		Model:    "Porsche 917K",
		Compound: "Rubber",
		TirePart: "P917-T1",
		ODmm:     "21.0",
		Widthmm:  "12.0",
		Position: "Front/Rear",
		Notes:    "Vintage tread pattern",
		Source:   "Policar sheet",
	}

	values := row.Values()
	columns := Columns()
	if len(values) != len(columns) {
		t.Fatalf("Expected %d values, got %d", len(columns), len(values))
	}
	for i, column := range columns {
		if values[i] != row.Field(column) {
			t.Errorf("Value %d: expected %q for column %s, got %q", i, row.Field(column), column, values[i])
		}
	}
}

func TestNewRowDropsUnknownKeys(t *testing.T) {
	row := NewRow(map[string]string{
		ColBrand:   "NSR",
		ColModel:   "Audi R8 LMS",
		"Diameter": "20.5",
	})

	want := Row{Brand: "NSR", Model: "Audi R8 LMS"}
	if row != want {
		t.Errorf("Expected %+v, got %+v", want, row)
	}
}

func TestNewTableCopiesRows(t *testing.T) {
	rows := sampleRows()
	table := NewTable(rows)

	rows[0].Brand = "Mutated"
	if table.Row(0).Brand != "NSR" {
		t.Error("Mutating the source slice reached the table")
	}

	extracted := table.Rows()
	extracted[1].Brand = "Mutated"
	if table.Row(1).Brand != "Policar" {
		t.Error("Mutating an extracted row slice reached the table")
	}
}

func TestTableEqual(t *testing.T) {
	a := sampleTable()
	b := sampleTable()
	if !a.Equal(b) {
		t.Error("Expected equally built tables to be equal")
	}

	shorter := NewTable(sampleRows()[:3])
	if a.Equal(shorter) {
		t.Error("Expected tables of different length to differ")
	}

	reordered := sampleRows()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	if a.Equal(NewTable(reordered)) {
		t.Error("Expected reordered rows to differ")
	}
}

func TestCriteriaIsZero(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"zero value", Criteria{}, true},
		{"empty compound slice", Criteria{Compounds: []string{}}, true},
		{"compound set", Criteria{Compounds: []string{"Silicone"}}, false},
		{"brand only", Criteria{Brand: "NSR"}, false},
		{"model only", Criteria{Model: "audi"}, false},
		{"position only", Criteria{Position: "rear"}, false},
		{"free text only", Criteria{Text: "917"}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.criteria.IsZero(); got != test.want {
				t.Errorf("IsZero(%+v): expected %v, got %v", test.criteria, test.want, got)
			}
		})
	}
}

func TestColumnsAreStable(t *testing.T) {
	want := []string{"Brand", "Model", "Compound", "Tire_Part", "OD_mm", "Width_mm", "Position", "Notes", "Source"}
	if got := Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected canonical column order %v, got %v", want, got)
	}
}
