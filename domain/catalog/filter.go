package catalog

import (
	"strings"
)

// Apply narrows table to the rows matching criteria. Stages are
// conjunctive: compound, brand, model, position, free text, in that
// order. The free-text stage alone is a disjunction, across Notes and
// Tire_Part. The result is a subsequence of the input with relative
// order preserved; the input table is never modified. Pure function:
// identical inputs give identical output.
func Apply(table Table, criteria Criteria) Table {
	if criteria.IsZero() {
		return table
	}

	compounds := toSet(criteria.Compounds)
	model := strings.ToLower(criteria.Model)
	position := strings.ToLower(criteria.Position)
	text := strings.ToLower(criteria.Text)

	matched := make([]Row, 0, len(table.rows))
	for _, row := range table.rows {
		if !matchCompound(row, compounds) {
			continue
		}
		if !matchBrand(row, criteria.Brand) {
			continue
		}
		if !matchModel(row, model) {
			continue
		}
		if !matchPosition(row, position) {
			continue
		}
		if !matchText(row, text) {
			continue
		}
		matched = append(matched, row)
	}
	return Table{rows: matched}
}

// matchCompound keeps rows whose Compound is a member of the selected
// set. Membership is exact and case sensitive; compound values form a
// curated vocabulary, not free text.
func matchCompound(row Row, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	_, ok := selected[row.Compound]
	return ok
}

// matchBrand keeps rows whose Brand equals the selection exactly,
// case sensitive.
func matchBrand(row Row, brand string) bool {
	if brand == "" {
		return true
	}
	return row.Brand == brand
}

// matchModel keeps rows whose Model contains the lowered query. A row
// with an empty Model never matches a non-empty query.
func matchModel(row Row, loweredQuery string) bool {
	if loweredQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.Model), loweredQuery)
}

// matchPosition is a substring match rather than equality so composite
// labels such as "Front/Rear" match either selection.
func matchPosition(row Row, loweredQuery string) bool {
	if loweredQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.Position), loweredQuery)
}

// matchText searches Notes and Tire_Part; a hit in either keeps the row.
func matchText(row Row, loweredQuery string) bool {
	if loweredQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.Notes), loweredQuery) ||
		strings.Contains(strings.ToLower(row.TirePart), loweredQuery)
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
