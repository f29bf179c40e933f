package query

import (
	"strconv"
	"strings"

	"avaliaccess/internal/api"
)

// ListingPath is the route of the filtered listing screen
const ListingPath = "/explore"

// StatePolicy decides what happens to the city when the state changes
type StatePolicy int

const (
	// KeepCity leaves the city untouched (home autosuggest)
	KeepCity StatePolicy = iota
	// ResetCity clears the city (explore filter bar)
	ResetCity
)

// Service holds the current query of one search widget. Setters only replace state;
// reacting to changes is up to the owner.
type Service struct {
	query  Query
	policy StatePolicy
}

// NewService creates an empty query model
func NewService(policy StatePolicy) *Service {
	return &Service{policy: policy}
}

// Current returns a snapshot of the query
func (s *Service) Current() Query {
	return s.query
}

// Text returns the raw text
func (s *Service) Text() string {
	return s.query.Text
}

// Filters returns the active filters
func (s *Service) Filters() Filters {
	return s.query.Filters
}

// SetText replaces the text, keeping it untrimmed
func (s *Service) SetText(text string) {
	s.query.Text = text
}

// SetType replaces the type filter
func (s *Service) SetType(t string) {
	s.query.Filters.Type = strings.TrimSpace(t)
}

// SetMinRating replaces the minimum rating; values outside 1..5 clear it
func (s *Service) SetMinRating(r int) {
	if r < 1 || r > 5 {
		r = 0
	}
	s.query.Filters.MinRating = r
}

// SetState replaces the state filter, applying the service's city policy
func (s *Service) SetState(state string) {
	state = strings.TrimSpace(state)
	if s.policy == ResetCity && state != s.query.Filters.State {
		s.query.Filters.City = ""
	}
	s.query.Filters.State = state
}

// SetCity replaces the city filter
func (s *Service) SetCity(city string) {
	s.query.Filters.City = strings.TrimSpace(city)
}

// Set replaces the whole query
func (s *Service) Set(q Query) {
	s.query = q
}

// ClearText empties the text and keeps the filters
func (s *Service) ClearText() {
	s.query.Text = ""
}

// ClearFilters drops every filter
func (s *Service) ClearFilters() {
	s.query.Filters = Filters{}
}

// ListingParams builds the listing query string parameters in the order name, type,
// minRating, state, city. Blank values are left out.
func ListingParams(q Query) *api.Params {
	p := &api.Params{}
	p.Add("name", q.Trimmed()).
		Add("type", q.Filters.Type).
		AddInt("minRating", q.Filters.MinRating).
		Add("state", q.Filters.State).
		Add("city", q.Filters.City)
	return p
}

// ListingURL returns the route of the filtered listing for q
func ListingURL(q Query) string {
	p := ListingParams(q)
	if p.Len() == 0 {
		return ListingPath
	}
	return ListingPath + "?" + p.Encode()
}

// ParseListing rebuilds a query from listing parameters
func ParseListing(get func(string) string) Query {
	rating, _ := strconv.Atoi(get("minRating"))
	q := Query{
		Text: get("name"),
		Filters: Filters{
			Type:  get("type"),
			State: get("state"),
			City:  get("city"),
		},
	}
	if rating >= 1 && rating <= 5 {
		q.Filters.MinRating = rating
	}
	return q
}

// SearchParams converts the query to a directory search request
func SearchParams(q Query, page, size int) api.SearchParams {
	return api.SearchParams{
		Name:      q.Trimmed(),
		City:      q.Filters.City,
		State:     q.Filters.State,
		Type:      q.Filters.Type,
		MinRating: q.Filters.MinRating,
		Page:      page,
		Size:      size,
	}
}
