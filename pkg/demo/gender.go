package demo

import (
	"fmt"
	"strings"
)

// Gender is a closed two-variant tag. The persisted and rendered labels are
// exactly "Male" and "Female"; parsing is case-insensitive. Ordering matters:
// when a gender distribution ties, the mode resolves to the lower variant
// (Male), which keeps results stable across runs.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

// ParseGender accepts "male" or "female" in any casing.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return 0, fmt.Errorf("unknown gender %q (want male or female)", s)
}

// MarshalText emits the canonical label, so Gender-keyed maps serialize as
// {"Male": ..., "Female": ...} in JSON documents.
func (g Gender) MarshalText() ([]byte, error) {
	switch g {
	case Male, Female:
		return []byte(g.String()), nil
	}
	return nil, fmt.Errorf("invalid gender value %d", int(g))
}

func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
