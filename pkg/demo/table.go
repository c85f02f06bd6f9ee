package demo

// Cell is one profile's worth of table data. Name carries the "N/A"
// placeholder when no name resolved, so renderers never see an empty
// column. Age and BirthYear are nil when age data was absent.
type Cell struct {
	Name      string   `json:"name"`
	Gender    string   `json:"gender,omitempty"`
	Age       *float64 `json:"age,omitempty"`
	BirthYear *int     `json:"birth_year,omitempty"`
}

// Row holds the three profiles computed for one year: unconditional
// (gender by mode), male-conditioned, and female-conditioned.
type Row struct {
	Year    int  `json:"year"`
	Overall Cell `json:"overall"`
	Male    Cell `json:"male"`
	Female  Cell `json:"female"`
}

// NamePlaceholder stands in for an unresolvable name in table output.
const NamePlaceholder = "N/A"

// BuildTable composes three profiles per year and returns one row per input
// year, in input order. Years are taken exactly as given: nothing is
// reordered or deduplicated, and a year with no record fails fast with a
// YearNotFoundError rather than being silently skipped.
func BuildTable(years []int, records map[int]YearRecord, names NameTable) ([]Row, error) {
	rows := make([]Row, 0, len(years))
	for _, year := range years {
		rec, ok := records[year]
		if !ok {
			return nil, &YearNotFoundError{Year: year}
		}

		male, female := Male, Female
		row := Row{
			Year:    year,
			Overall: cell(Compose(rec, year, names, nil)),
			Male:    cell(Compose(rec, year, names, &male)),
			Female:  cell(Compose(rec, year, names, &female)),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(p Profile) Cell {
	c := Cell{Name: NamePlaceholder}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if !p.GenderFixed && p.Gender != nil {
		c.Gender = p.Gender.String()
	}
	if p.Age != nil {
		age := *p.Age
		c.Age = &age
		by := BirthYear(p.ReferenceYear, age)
		c.BirthYear = &by
	}
	return c
}
