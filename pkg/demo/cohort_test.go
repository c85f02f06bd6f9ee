package demo

import "testing"

func TestBirthYear(t *testing.T) {
	tests := []struct {
		ref  int
		age  float64
		want int
	}{
		{2024, 38.9, 1985},
		{2024, 39.0, 1985},
		{2024, 38.4, 1986}, // 1985.6 rounds up
		{2050, 38.9, 2011},
		{2024, 0, 2024},
		{2024, 38.5, 1986}, // 1985.5 rounds half away from zero
	}
	for _, tt := range tests {
		if got := BirthYear(tt.ref, tt.age); got != tt.want {
			t.Errorf("BirthYear(%d, %v) = %d, want %d", tt.ref, tt.age, got, tt.want)
		}
	}
}

func TestResolveName(t *testing.T) {
	names := NameTable{
		1985: {
			Female: {Name: "Jessica", Count: 48346},
			Male:   {Name: "Michael", Count: 64924},
		},
		1952: {Male: {Name: "James"}},
	}

	tests := []struct {
		name  string
		year  int
		g     Gender
		want  string
		found bool
	}{
		{"female hit", 1985, Female, "Jessica", true},
		{"male hit", 1985, Male, "Michael", true},
		{"gender missing from record", 1952, Female, "", false},
		{"year not covered", 2011, Female, "", false},
		{"pre-dataset year", 1850, Male, "", false},
	}
	for _, tt := range tests {
		got, found := ResolveName(names, tt.year, tt.g)
		if got != tt.want || found != tt.found {
			t.Errorf("%s: ResolveName(%d, %v) = (%q, %v), want (%q, %v)",
				tt.name, tt.year, tt.g, got, found, tt.want, tt.found)
		}
	}
}

func TestResolveName_EmptyTable(t *testing.T) {
	if _, ok := ResolveName(nil, 1985, Female); ok {
		t.Error("expected absent name from nil table")
	}
}
