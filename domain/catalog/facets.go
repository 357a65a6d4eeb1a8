package catalog

import (
	"sort"
)

// Facets lists the distinct values the filter controls can offer,
// collected from the table once at load time. Values are sorted
// ascending; empty values are omitted.
type Facets struct {
	Compounds []string `json:"compounds"`
	Brands    []string `json:"brands"`
	Positions []string `json:"positions"`
}

// CollectFacets scans the table for the distinct values of each
// filterable column.
func CollectFacets(table Table) Facets {
	return Facets{
		Compounds: distinctValues(table, ColCompound),
		Brands:    distinctValues(table, ColBrand),
		Positions: distinctValues(table, ColPosition),
	}
}

func distinctValues(table Table, column string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, row := range table.rows {
		v := row.Field(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
