package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/ui/input/types"
)

// TypingMode edits the query text
type TypingMode struct{}

func NewTypingMode() *TypingMode {
	return &TypingMode{}
}

func (m *TypingMode) Name() string {
	return "search"
}

func (m *TypingMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *TypingMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *TypingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "enter":
		return []types.Action{types.SubmitAction{}}, true
	case "down", "ctrl+n":
		if ctx.SuggestionsVisible() && ctx.SuggestionCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSuggestions}}, true
		}
		return nil, true
	case "tab":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilters}}, true
	case "esc":
		if ctx.SuggestionsVisible() {
			return []types.Action{types.HideSuggestionsAction{}}, true
		}
		return nil, false
	default:
		// Let the handler update the text input
		return nil, false
	}
}
