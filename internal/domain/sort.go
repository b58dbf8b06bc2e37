package domain

import (
	"encoding/json"
	"fmt"
)

// SortOrder orders the catalog grid by title.
type SortOrder int

const (
	// Ascending sorts titles A to Z.
	Ascending SortOrder = iota
	// Descending sorts titles Z to A.
	Descending
)

// Toggle returns the opposite order. There is no third state.
func (o SortOrder) Toggle() SortOrder {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// String returns the wire value ("a-z" or "z-a").
func (o SortOrder) String() string {
	if o == Descending {
		return "z-a"
	}
	return "a-z"
}

// Label returns the header button label.
func (o SortOrder) Label() string {
	if o == Descending {
		return "Z→A"
	}
	return "A→Z"
}

// ParseSortOrder parses a wire value. Both the short ("a-z") and long
// ("ascending") forms are accepted.
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "a-z", "asc", "ascending":
		return Ascending, nil
	case "z-a", "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort order %q", s)
	}
}

// MarshalJSON encodes the order as its wire value.
func (o SortOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes a wire value.
func (o *SortOrder) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSortOrder(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
