package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/ui/input/types"
)

// SuggestionsMode moves a highlight over the open dropdown. Text keys fall back to typing.
type SuggestionsMode struct{}

func NewSuggestionsMode() *SuggestionsMode {
	return &SuggestionsMode{}
}

func (m *SuggestionsMode) Name() string {
	return "suggestions"
}

func (m *SuggestionsMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.MoveCursorAction{Delta: -ctx.SuggestionCursor()}}
}

func (m *SuggestionsMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *SuggestionsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		if ctx.SuggestionCursor() == 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
		}
		return []types.Action{types.MoveCursorAction{Delta: -1}}, true
	case "down", "ctrl+n":
		return []types.Action{types.MoveCursorAction{Delta: 1}}, true
	case "enter":
		return []types.Action{types.SelectSuggestionAction{Index: ctx.SuggestionCursor()}}, true
	case "esc":
		return []types.Action{
			types.HideSuggestionsAction{},
			types.ChangeModeAction{Mode: types.ModeTyping},
		}, true
	case "tab":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilters}}, true
	default:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, false
	}
}
