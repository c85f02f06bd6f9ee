package demo

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/americana/pkg/stats"
)

// Profile is a composite demographic profile for one reference year.
// Gender, Age and Name are independently optional: a nil field means the
// underlying data could not resolve it, which is a normal outcome for
// partial sources. GenderFixed records whether the gender was an input
// constraint rather than derived by mode; it changes rendering and must
// survive into the output.
type Profile struct {
	Gender        *Gender  `json:"gender,omitempty"`
	Age           *float64 `json:"age,omitempty"`
	Name          *string  `json:"name,omitempty"`
	GenderFixed   bool     `json:"gender_fixed"`
	ReferenceYear int      `json:"reference_year"`
}

// Compose derives a composite profile from one year's record.
//
// With fixed == nil the profile is unconditional: gender is the mode of the
// gender distribution and age is always the overall median, even when the
// modal gender has a ByGender entry. With fixed set, the gender is taken as
// given and the age prefers that gender's ByGender median, falling back to
// the overall median when the breakdown is absent.
//
// A name is resolved only when both gender and age resolved; it comes from
// the name table for the implied birth cohort, which is in general a
// different year than referenceYear. Compose never fails: missing data
// yields nil fields, and structurally invalid records are rejected upstream
// by the store.
func Compose(rec YearRecord, referenceYear int, names NameTable, fixed *Gender) Profile {
	p := Profile{ReferenceYear: referenceYear}

	if fixed != nil {
		g := *fixed
		p.Gender = &g
		p.GenderFixed = true
	} else if g, ok := stats.Mode(rec.Gender); ok {
		p.Gender = &g
	}

	if p.GenderFixed && p.Gender != nil {
		if age, ok := rec.Age.ByGender[*p.Gender]; ok {
			p.Age = &age
		}
	}
	if p.Age == nil && rec.Age.Median != nil {
		age := *rec.Age.Median
		p.Age = &age
	}

	if p.Gender != nil && p.Age != nil {
		if name, ok := ResolveName(names, BirthYear(referenceYear, *p.Age), *p.Gender); ok {
			p.Name = &name
		}
	}
	return p
}

// Text renders the profile as the classic multi-line summary. The Name line
// is omitted when no name resolved; the Gender line always prints, with an
// empty value when gender could not be resolved.
func (p Profile) Text() string {
	title := "The Average American"
	if p.GenderFixed && p.Gender != nil {
		switch *p.Gender {
		case Male:
			title += " Man"
		case Female:
			title += " Woman"
		}
	}

	var b strings.Builder
	b.WriteString(title + ":")
	if p.Name != nil {
		fmt.Fprintf(&b, "\n- Name: %s", *p.Name)
	}
	gender := ""
	if p.Gender != nil {
		gender = p.Gender.String()
	}
	fmt.Fprintf(&b, "\n- Gender: %s", gender)
	age := ""
	if p.Age != nil {
		age = fmt.Sprintf("%.1f", *p.Age)
	}
	fmt.Fprintf(&b, "\n- Age: %s years old", age)
	return b.String()
}
