package types

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitAction submits the search form
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

// Suggestion actions
type MoveCursorAction struct {
	Delta int
}

func (a MoveCursorAction) Type() string { return "move_cursor" }

type SelectSuggestionAction struct {
	Index int
}

func (a SelectSuggestionAction) Type() string { return "select_suggestion" }

type HideSuggestionsAction struct{}

func (a HideSuggestionsAction) Type() string { return "hide_suggestions" }

// Filter actions
type FocusFilterAction struct {
	Delta int
}

func (a FocusFilterAction) Type() string { return "focus_filter" }

type CycleFilterAction struct {
	Delta int
}

func (a CycleFilterAction) Type() string { return "cycle_filter" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }
