package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is an insertion-ordered set of query parameters.
// Blank values are never stored, so "no constraint" and "empty string" cannot be confused.
type Params struct {
	keys   []string
	values []string
}

// Add appends key=value when value is not blank after trimming
func (p *Params) Add(key, value string) *Params {
	if strings.TrimSpace(value) == "" {
		return p
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return p
}

// AddInt appends key=n when n is positive
func (p *Params) AddInt(key string, n int) *Params {
	if n <= 0 {
		return p
	}
	return p.Add(key, strconv.Itoa(n))
}

// Has reports whether key was added
func (p *Params) Has(key string) bool {
	for _, k := range p.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the first value stored for key
func (p *Params) Get(key string) string {
	for i, k := range p.keys {
		if k == key {
			return p.values[i]
		}
	}
	return ""
}

// Len returns the number of parameters
func (p *Params) Len() int {
	return len(p.keys)
}

// Encode renders the parameters in insertion order.
// url.Values.Encode sorts keys, which would reorder the listing URL.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[i]))
	}
	return b.String()
}

// SearchParams are the filters and paging of a directory search
type SearchParams struct {
	Name          string
	City          string
	State         string
	Type          string
	MinRating     int // 0 means no constraint
	Page          int
	Size          int
	SortBy        string
	SortDirection string // "asc" or "desc"
}

// Query serializes the search in the directory's parameter order.
// Page is always sent; everything else only when set.
func (s SearchParams) Query() *Params {
	p := &Params{}
	p.Add("name", strings.TrimSpace(s.Name))
	p.Add("city", s.City)
	p.Add("state", s.State)
	p.Add("type", s.Type)
	p.AddInt("minRating", s.MinRating)
	page := s.Page
	if page < 0 {
		page = 0
	}
	p.keys = append(p.keys, "page")
	p.values = append(p.values, strconv.Itoa(page))
	p.AddInt("size", s.Size)
	p.Add("sortBy", s.SortBy)
	p.Add("sortDirection", s.SortDirection)
	return p
}
