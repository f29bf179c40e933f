package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents where keyboard focus is inside the search widget
type Mode int

const (
	ModeTyping Mode = iota
	ModeSuggestions
	ModeFilters
)

// Action represents a command the widget should execute
type Action interface {
	Type() string
}

// Context provides read-only access to widget state needed for input handling
type Context interface {
	SuggestionsVisible() bool
	SuggestionCount() int
	SuggestionCursor() int
	FilterFocus() int
	FilterCount() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
