package demo

import "math"

// BirthYear computes the implied birth year for someone of the given age at
// referenceYear: round(referenceYear - age), rounding half away from zero
// (math.Round). The same function serves name lookups and table display, so
// the two can never disagree.
func BirthYear(referenceYear int, age float64) int {
	return int(math.Round(float64(referenceYear) - age))
}

// ResolveName returns the most popular name for the given gender in the
// given birth year. The second return is false when the table has no record
// for that year or the record has no entry for that gender; both are
// expected outcomes (the historical dataset starts in 1880), not errors.
func ResolveName(names NameTable, birthYear int, g Gender) (string, bool) {
	rec, ok := names[birthYear]
	if !ok {
		return "", false
	}
	entry, ok := rec[g]
	if !ok || entry.Name == "" {
		return "", false
	}
	return entry.Name, true
}
