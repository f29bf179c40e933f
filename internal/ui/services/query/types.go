package query

import (
	"fmt"
	"strings"
)

// Filters are the optional constraints of a search. Zero values mean "no constraint".
type Filters struct {
	Type      string
	MinRating int // 1..5, 0 when unset
	State     string
	City      string
}

// IsZero reports whether no filter is set
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Query is the text typed by the user plus the active filters.
// Text is stored raw; Trimmed is what gets sent.
type Query struct {
	Text    string
	Filters Filters
}

// Trimmed returns the text with surrounding whitespace removed
func (q Query) Trimmed() string {
	return strings.TrimSpace(q.Text)
}

// Fingerprint identifies the request a query would produce
func (q Query) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", q.Trimmed(), q.Filters.Type, q.Filters.MinRating, q.Filters.State, q.Filters.City)
}
