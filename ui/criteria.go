package ui

import (
	"net/url"
	"strings"

	"tirescout/domain/catalog"
)

// ParseCriteria maps request query parameters onto filter criteria.
// Select-backed parameters (compound, brand, position) use the "All"
// sentinel for no restriction; the text inputs (model, q) are plain
// substring queries and keep the literal value.
func ParseCriteria(values url.Values) catalog.Criteria {
	criteria := catalog.Criteria{
		Brand:    dropAll(values.Get("brand")),
		Model:    strings.TrimSpace(values.Get("model")),
		Position: dropAll(values.Get("position")),
		Text:     strings.TrimSpace(values.Get("q")),
	}

	for _, compound := range values["compound"] {
		if compound = dropAll(compound); compound != "" {
			criteria.Compounds = append(criteria.Compounds, compound)
		}
	}

	return criteria
}

func dropAll(value string) string {
	value = strings.TrimSpace(value)
	if value == catalog.All {
		return ""
	}
	return value
}
