package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/ui/input/modes"
	"avaliaccess/internal/ui/input/types"
)

// Handler routes keys to the active mode and keeps the text input focus in sync
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // owned by the widget
}

func New(ti *textinput.Model) *Handler {
	h := &Handler{
		currentMode: types.ModeTyping,
		textInput:   ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeTyping] = modes.NewTypingMode()
	h.modes[types.ModeSuggestions] = modes.NewSuggestionsMode()
	h.modes[types.ModeFilters] = modes.NewFiltersMode()

	return h
}

// HandleKey returns the actions for msg. Keys no mode consumes go to the text input
// while it has focus; otherwise handled is false.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) (actions []types.Action, cmd tea.Cmd, handled bool) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil, false
	}

	modeActions, consumed := handler.HandleKey(msg, ctx)

	for _, action := range modeActions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			actions = append(actions, action)
			continue
		}
		actions = append(actions, h.switchMode(changeMode.Mode, ctx)...)
	}

	if consumed {
		return actions, h.focusCmd(), true
	}
	if !h.isTextMode(h.currentMode) {
		return actions, nil, len(actions) > 0
	}

	before := h.textInput.Value()
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		actions = append(actions, types.UpdateTextAction{Text: after})
	}
	// an esc the text input ignores stays unhandled
	return actions, cmd, len(actions) > 0 || msg.Type != tea.KeyEsc
}

// SetMode switches mode outside of key handling, e.g. when the dropdown closes
func (h *Handler) SetMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	if mode == h.currentMode {
		return nil, nil
	}
	actions := h.switchMode(mode, ctx)
	return actions, h.focusCmd()
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var actions []types.Action
	if h.modes[h.currentMode] != nil {
		actions = append(actions, h.modes[h.currentMode].Exit(ctx)...)
	}
	h.currentMode = mode
	if h.modes[h.currentMode] != nil {
		actions = append(actions, h.modes[h.currentMode].Enter(ctx)...)
	}
	return actions
}

// focusCmd focuses the text input in text modes and blurs it otherwise
func (h *Handler) focusCmd() tea.Cmd {
	if h.isTextMode(h.currentMode) {
		if !h.textInput.Focused() {
			return h.textInput.Focus()
		}
		return nil
	}
	h.textInput.Blur()
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeTyping, types.ModeSuggestions:
		return true
	default:
		return false
	}
}

// CurrentMode returns the active mode
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeName returns the display name of the active mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// Reset returns to typing mode
func (h *Handler) Reset() {
	h.currentMode = types.ModeTyping
	h.focusCmd()
}
