package sorting

// Mode is an order the directory service can sort listings by
type Mode int

const (
	SortNewest Mode = iota
	SortName
	SortRating
)

// modes in cycling order
var modes = []Mode{SortNewest, SortName, SortRating}

// State holds sorting state
type State struct {
	CurrentMode Mode
}
