package sorting

// Service keeps the listing's sort order
type Service struct {
	state *State
}

// NewService starts with the newest establishments first
func NewService() *Service {
	return &Service{state: &State{CurrentMode: SortNewest}}
}

// Mode returns the current sort mode
func (s *Service) Mode() Mode {
	return s.state.CurrentMode
}

// SetMode sets the sort mode. It reports whether the mode changed.
func (s *Service) SetMode(mode Mode) bool {
	if mode == s.state.CurrentMode {
		return false
	}
	s.state.CurrentMode = mode
	return true
}

// Next cycles to the next sort mode
func (s *Service) Next() Mode {
	current := 0
	for i, mode := range modes {
		if mode == s.state.CurrentMode {
			current = i
			break
		}
	}
	s.state.CurrentMode = modes[(current+1)%len(modes)]
	return s.state.CurrentMode
}

// Params returns the sortBy and sortDirection search parameters for the current mode
func (s *Service) Params() (sortBy, direction string) {
	switch s.state.CurrentMode {
	case SortName:
		return "name", "asc"
	case SortRating:
		return "averageRating", "desc"
	default:
		return "createdAt", "desc"
	}
}

// String returns a label for the current mode
func (s *Service) String() string {
	switch s.state.CurrentMode {
	case SortName:
		return "name"
	case SortRating:
		return "best rated"
	default:
		return "newest"
	}
}
