package search

import (
	"context"

	"avaliaccess/internal/api"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/ui/services/query"
)

// Searcher is the remote side of the autosuggest
type Searcher interface {
	Search(ctx context.Context, params api.SearchParams) (*domain.EstablishmentPage, error)
}

// ResultMsg carries the outcome of one suggestion request back to the update loop
type ResultMsg struct {
	Source string // id of the issuing service
	Seq    uint64
	Query  query.Query
	Page   *domain.EstablishmentPage
	Err    error
}

// State is the suggestion list as shown by the widget
type State struct {
	Items   []domain.EstablishmentSummary
	Total   int
	Visible bool
}
