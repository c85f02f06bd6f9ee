// Package demo derives composite demographic profiles ("the average
// American") from year-indexed population statistics: gender by mode of the
// gender distribution, age by median, and a name looked up for the implied
// birth cohort. Everything in this package is a pure function of its inputs;
// loading and persistence live in pkg/store, fetching in pkg/importer.
package demo

import "fmt"

// GenderDistribution maps a gender to its percentage share of the
// population. Shares need not sum to exactly 100 (source rounding).
type GenderDistribution map[Gender]float64

// AgeFigures holds the median ages for one year. Median is nil only when
// the source had no age data at all. ByGender, when present, carries
// gender-specific medians and takes precedence over Median for
// gender-conditioned profiles.
type AgeFigures struct {
	Median   *float64           `json:"median,omitempty"`
	ByGender map[Gender]float64 `json:"by_gender,omitempty"`
}

// YearRecord is the demographic truth for one calendar year. Records are
// built by the store and never mutated here.
type YearRecord struct {
	Gender GenderDistribution `json:"gender,omitempty"`
	Age    AgeFigures         `json:"age"`
}

// NameEntry is the most popular name for one gender in one birth year.
// Count is the raw occurrence count from the source when known.
type NameEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// NamePopularityRecord maps gender to that year's most popular name.
// A missing key means the source had no data for that gender.
type NamePopularityRecord map[Gender]NameEntry

// NameTable indexes name popularity by birth year. Years outside the
// covered range are simply absent; that is never an error.
type NameTable map[int]NamePopularityRecord

// YearNotFoundError reports a requested year with no demographic record.
type YearNotFoundError struct {
	Year int
}

func (e *YearNotFoundError) Error() string {
	return fmt.Sprintf("no demographic record for year %d", e.Year)
}
