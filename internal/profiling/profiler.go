package profiling

import (
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"tirescout/domain/catalog"
)

const (
	// numericThreshold is the share of non-empty values that must parse
	// as numbers before a column gets a numeric summary. OD_mm and
	// Width_mm stay text in the table; the summary is display-only.
	numericThreshold = 0.8
	// topValueLimit caps the most-common-values list per column.
	topValueLimit = 5
	// histogramBuckets is the bucket count for numeric columns.
	histogramBuckets = 6
)

// TableProfile summarizes a loaded table for the dataset info panel.
type TableProfile struct {
	RowCount int             `json:"row_count"`
	Columns  []ColumnProfile `json:"columns"`
}

// ColumnProfile summarizes one canonical column.
type ColumnProfile struct {
	Name        string          `json:"name"`
	NonEmpty    int             `json:"non_empty"`
	Missing     int             `json:"missing"`
	MissingRate float64         `json:"missing_rate"`
	Distinct    int             `json:"distinct"`
	TopValues   []ValueCount    `json:"top_values,omitempty"`
	Numeric     *NumericSummary `json:"numeric,omitempty"`
}

// ValueCount pairs a cell value with its occurrence count.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NumericSummary holds descriptive statistics for columns whose values
// parse as numbers.
type NumericSummary struct {
	Count     int               `json:"count"`
	Min       float64           `json:"min"`
	Max       float64           `json:"max"`
	Mean      float64           `json:"mean"`
	Median    float64           `json:"median"`
	StdDev    float64           `json:"std_dev"`
	Q1        float64           `json:"q1"`
	Q3        float64           `json:"q3"`
	Histogram []HistogramBucket `json:"histogram,omitempty"`
}

// HistogramBucket is one equal-width bucket of a numeric column.
type HistogramBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ProfileTable computes per-column summaries for every canonical column.
func ProfileTable(table catalog.Table) TableProfile {
	profile := TableProfile{
		RowCount: table.Len(),
		Columns:  make([]ColumnProfile, 0, len(catalog.Columns())),
	}
	for _, column := range catalog.Columns() {
		profile.Columns = append(profile.Columns, profileColumn(table, column))
	}
	return profile
}

func profileColumn(table catalog.Table, column string) ColumnProfile {
	counts := make(map[string]int)
	nonEmpty := 0
	for _, row := range table.Rows() {
		v := row.Field(column)
		if v == "" {
			continue
		}
		nonEmpty++
		counts[v]++
	}

	cp := ColumnProfile{
		Name:     column,
		NonEmpty: nonEmpty,
		Missing:  table.Len() - nonEmpty,
		Distinct: len(counts),
	}
	if table.Len() > 0 {
		cp.MissingRate = float64(cp.Missing) / float64(table.Len())
	}
	cp.TopValues = topValues(counts)
	cp.Numeric = numericSummary(table, column, nonEmpty)
	return cp
}

// topValues returns the most frequent values, count descending, value
// ascending on ties.
func topValues(counts map[string]int) []ValueCount {
	if len(counts) == 0 {
		return nil
	}
	values := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		values = append(values, ValueCount{Value: v, Count: c})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	if len(values) > topValueLimit {
		values = values[:topValueLimit]
	}
	return values
}

// numericSummary parses the column's non-empty values and summarizes
// them when enough of the column is numeric. Returns nil otherwise.
func numericSummary(table catalog.Table, column string, nonEmpty int) *NumericSummary {
	if nonEmpty == 0 {
		return nil
	}

	values := make([]float64, 0, nonEmpty)
	for _, row := range table.Rows() {
		v := row.Field(column)
		if v == "" {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			values = append(values, parsed)
		}
	}
	if float64(len(values))/float64(nonEmpty) < numericThreshold {
		return nil
	}

	min, err := stats.Min(values)
	if err != nil {
		return nil
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return nil
	}
	q1, err := stats.Percentile(values, 25)
	if err != nil {
		return nil
	}
	q3, err := stats.Percentile(values, 75)
	if err != nil {
		return nil
	}

	return &NumericSummary{
		Count:     len(values),
		Min:       min,
		Max:       max,
		Mean:      mean,
		Median:    median,
		StdDev:    stdDev,
		Q1:        q1,
		Q3:        q3,
		Histogram: histogram(values, min, max),
	}
}
