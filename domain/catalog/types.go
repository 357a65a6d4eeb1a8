package catalog

// Canonical column names, in display and export order.
const (
	ColBrand    = "Brand"
	ColModel    = "Model"
	ColCompound = "Compound"
	ColTirePart = "Tire_Part"
	ColODmm     = "OD_mm"
	ColWidthmm  = "Width_mm"
	ColPosition = "Position"
	ColNotes    = "Notes"
	ColSource   = "Source"
)

// All is the option value presentation surfaces use for "no restriction".
// It never reaches the filter pipeline; parsers map it to empty criteria.
const All = "All"

// Columns returns the canonical column order shared by the results view
// and both export formats.
func Columns() []string {
	return []string{
		ColBrand,
		ColModel,
		ColCompound,
		ColTirePart,
		ColODmm,
		ColWidthmm,
		ColPosition,
		ColNotes,
		ColSource,
	}
}

// Row is one tire record. Every field is text; semantically numeric
// columns (outer diameter, width) stay unparsed strings. Missing values
// are empty strings, never absent.
type Row struct {
	Brand    string `json:"Brand"`
	Model    string `json:"Model"`
	Compound string `json:"Compound"`
	TirePart string `json:"Tire_Part"`
	ODmm     string `json:"OD_mm"`
	Widthmm  string `json:"Width_mm"`
	Position string `json:"Position"`
	Notes    string `json:"Notes"`
	Source   string `json:"Source"`
}

// NewRow builds a Row from a header-keyed record. Canonical columns
// missing from the record read as empty strings; extra keys are dropped.
func NewRow(fields map[string]string) Row {
	return Row{
		Brand:    fields[ColBrand],
		Model:    fields[ColModel],
		Compound: fields[ColCompound],
		TirePart: fields[ColTirePart],
		ODmm:     fields[ColODmm],
		Widthmm:  fields[ColWidthmm],
		Position: fields[ColPosition],
		Notes:    fields[ColNotes],
		Source:   fields[ColSource],
	}
}

// Field returns the value for a canonical column name. Unknown names
// read as empty string, never an error.
func (r Row) Field(column string) string {
	switch column {
	case ColBrand:
		return r.Brand
	case ColModel:
		return r.Model
	case ColCompound:
		return r.Compound
	case ColTirePart:
		return r.TirePart
	case ColODmm:
		return r.ODmm
	case ColWidthmm:
		return r.Widthmm
	case ColPosition:
		return r.Position
	case ColNotes:
		return r.Notes
	case ColSource:
		return r.Source
	default:
		return ""
	}
}

// Values returns the row's fields in canonical column order.
func (r Row) Values() []string {
	return []string{
		r.Brand,
		r.Model,
		r.Compound,
		r.TirePart,
		r.ODmm,
		r.Widthmm,
		r.Position,
		r.Notes,
		r.Source,
	}
}

// Table is an ordered sequence of rows. It is immutable after
// construction; filtering derives a new Table and never touches the
// original. Row order from the source is the iteration order for
// filtering, display and export.
type Table struct {
	rows []Row
}

// NewTable copies rows into an immutable table. Later mutation of the
// caller's slice does not reach the table.
func NewTable(rows []Row) Table {
	copied := make([]Row, len(rows))
	copy(copied, rows)
	return Table{rows: copied}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Row returns the row at index i in source order.
func (t Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns a copy of the row sequence in source order.
func (t Table) Rows() []Row {
	copied := make([]Row, len(t.rows))
	copy(copied, t.rows)
	return copied
}

// Equal reports whether two tables hold the same rows in the same order.
func (t Table) Equal(other Table) bool {
	if len(t.rows) != len(other.rows) {
		return false
	}
	for i := range t.rows {
		if t.rows[i] != other.rows[i] {
			return false
		}
	}
	return true
}

// Criteria is the value object one search carries. Empty values always
// mean "no restriction", never "match only empty".
type Criteria struct {
	// Compounds restricts by exact, case-sensitive membership.
	Compounds []string `json:"compounds,omitempty"`
	// Brand restricts by exact, case-sensitive equality.
	Brand string `json:"brand,omitempty"`
	// Model restricts by case-insensitive substring.
	Model string `json:"model,omitempty"`
	// Position restricts by case-insensitive substring.
	Position string `json:"position,omitempty"`
	// Text restricts by case-insensitive substring over Notes or Tire_Part.
	Text string `json:"text,omitempty"`
}

// IsZero reports whether no stage restricts anything.
func (c Criteria) IsZero() bool {
	return len(c.Compounds) == 0 &&
		c.Brand == "" &&
		c.Model == "" &&
		c.Position == "" &&
		c.Text == ""
}
