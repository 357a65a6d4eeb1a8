package tabular

// RawRecord is one source row keyed by trimmed header label
type RawRecord map[string]string

// TableData represents parsed source data before domain mapping
type TableData struct {
	Headers []string
	Rows    []RawRecord
}
