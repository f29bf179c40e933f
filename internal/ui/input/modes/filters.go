package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/ui/input/types"
)

// FiltersMode cycles the values of the filter selectors
type FiltersMode struct{}

func NewFiltersMode() *FiltersMode {
	return &FiltersMode{}
}

func (m *FiltersMode) Name() string {
	return "filters"
}

func (m *FiltersMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.HideSuggestionsAction{}}
}

func (m *FiltersMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *FiltersMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "tab":
		if ctx.FilterFocus() >= ctx.FilterCount()-1 {
			return []types.Action{
				types.FocusFilterAction{Delta: -ctx.FilterFocus()},
				types.ChangeModeAction{Mode: types.ModeTyping},
			}, true
		}
		return []types.Action{types.FocusFilterAction{Delta: 1}}, true
	case "shift+tab":
		if ctx.FilterFocus() == 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
		}
		return []types.Action{types.FocusFilterAction{Delta: -1}}, true
	case "left", "h":
		return []types.Action{types.CycleFilterAction{Delta: -1}}, true
	case "right", "l", " ":
		return []types.Action{types.CycleFilterAction{Delta: 1}}, true
	case "backspace", "delete", "x":
		return []types.Action{types.ClearFilterAction{}}, true
	case "enter":
		return []types.Action{types.SubmitAction{}}, true
	case "esc", "up":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
	}
	return nil, false
}
