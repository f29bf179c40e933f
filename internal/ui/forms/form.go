package forms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/ui/views"
)

// Event is what a key did to the form
type Event int

const (
	EventNone Event = iota
	EventChanged
	EventSubmit
	EventCancel
	EventLeave // moved past the last field
)

// KeyMap are the form key bindings
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default form bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Right, k.Submit, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Left, k.Right, k.Toggle}, {k.Submit, k.Cancel}}
}

// Form is a vertical list of fields with one focused at a time
type Form struct {
	fields []*Field
	focus  int
	keys   KeyMap
	styles *views.Styles

	// WrapFocus cycles from the last field back to the first instead of leaving
	WrapFocus bool

	err     string
	message string
	busy    bool
}

// New creates a form with the first field focused
func New(styles *views.Styles, fields ...*Field) *Form {
	return &Form{fields: fields, keys: DefaultKeyMap(), styles: styles, WrapFocus: true}
}

// Init focuses the first field
func (f *Form) Init() tea.Cmd {
	return f.setFocus(0)
}

// Keys returns the form's key map
func (f *Form) Keys() KeyMap {
	return f.keys
}

// Field returns the field with key, nil if absent
func (f *Form) Field(key string) *Field {
	for _, fld := range f.fields {
		if fld.Key == key {
			return fld
		}
	}
	return nil
}

// Value returns the trimmed value of a field
func (f *Form) Value(key string) string {
	if fld := f.Field(key); fld != nil {
		if fld.Kind == KindPassword {
			return fld.Value()
		}
		return strings.TrimSpace(fld.Value())
	}
	return ""
}

// SetValue sets a field's value
func (f *Form) SetValue(key, value string) {
	if fld := f.Field(key); fld != nil {
		fld.SetValue(value)
	}
}

// Checked reports a toggle's state
func (f *Form) Checked(key string) bool {
	if fld := f.Field(key); fld != nil {
		return fld.Checked()
	}
	return false
}

// Focused returns the focused field
func (f *Form) Focused() *Field {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus]
}

// Typing reports whether printable keys go to a text field
func (f *Form) Typing() bool {
	fld := f.Focused()
	return fld != nil && (fld.Kind == KindText || fld.Kind == KindPassword) && fld.input.Focused()
}

// Blur removes focus from every field
func (f *Form) Blur() {
	for _, fld := range f.fields {
		fld.input.Blur()
	}
}

// Focus focuses field i
func (f *Form) Focus(i int) tea.Cmd {
	return f.setFocus(i)
}

// Missing returns the labels of required fields left blank
func (f *Form) Missing() []string {
	var missing []string
	for _, fld := range f.fields {
		if fld.Required && fld.Blank() {
			missing = append(missing, fld.Label)
		}
	}
	return missing
}

// Validate returns an error naming the missing required fields
func (f *Form) Validate() error {
	if missing := f.Missing(); len(missing) > 0 {
		return fmt.Errorf("required: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SetError shows an inline error; "" clears it
func (f *Form) SetError(msg string) {
	f.err = msg
	if msg != "" {
		f.message = ""
	}
}

// Error returns the inline error
func (f *Form) Error() string {
	return f.err
}

// SetMessage shows an inline notice
func (f *Form) SetMessage(msg string) {
	f.message = msg
}

// SetBusy marks the form as submitting; keys are ignored meanwhile
func (f *Form) SetBusy(busy bool) {
	f.busy = busy
}

// Busy reports whether the form is submitting
func (f *Form) Busy() bool {
	return f.busy
}

// Update handles a message and reports what happened
func (f *Form) Update(msg tea.Msg) (tea.Cmd, Event) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if fld := f.Focused(); fld != nil && fld.Kind != KindSelect && fld.Kind != KindToggle {
			var cmd tea.Cmd
			fld.input, cmd = fld.input.Update(msg)
			return cmd, EventNone
		}
		return nil, EventNone
	}
	if f.busy {
		return nil, EventNone
	}

	fld := f.Focused()
	switch {
	case key.Matches(keyMsg, f.keys.Cancel):
		return nil, EventCancel
	case key.Matches(keyMsg, f.keys.Submit):
		return nil, EventSubmit
	case key.Matches(keyMsg, f.keys.Next):
		if f.focus == len(f.fields)-1 && !f.WrapFocus {
			f.Blur()
			return nil, EventLeave
		}
		return f.setFocus(f.focus + 1), EventNone
	case key.Matches(keyMsg, f.keys.Prev):
		return f.setFocus(f.focus - 1), EventNone
	}

	if fld == nil {
		return nil, EventNone
	}

	switch fld.Kind {
	case KindSelect:
		switch {
		case key.Matches(keyMsg, f.keys.Left):
			fld.cycle(-1)
			return nil, EventChanged
		case key.Matches(keyMsg, f.keys.Right), key.Matches(keyMsg, f.keys.Toggle):
			fld.cycle(1)
			return nil, EventChanged
		case keyMsg.Type == tea.KeyBackspace || keyMsg.Type == tea.KeyDelete:
			if !fld.Required {
				fld.selected = -1
				return nil, EventChanged
			}
		}
		return nil, EventNone
	case KindToggle:
		if key.Matches(keyMsg, f.keys.Toggle) || key.Matches(keyMsg, f.keys.Left) || key.Matches(keyMsg, f.keys.Right) {
			fld.checked = !fld.checked
			return nil, EventChanged
		}
		return nil, EventNone
	default:
		before := fld.input.Value()
		var cmd tea.Cmd
		fld.input, cmd = fld.input.Update(keyMsg)
		if fld.input.Value() != before {
			return cmd, EventChanged
		}
		return cmd, EventNone
	}
}

func (f *Form) setFocus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	n := len(f.fields)
	i = ((i % n) + n) % n
	f.Blur()
	f.focus = i
	fld := f.fields[i]
	if fld.Kind == KindText || fld.Kind == KindPassword {
		return fld.input.Focus()
	}
	return nil
}

// View renders the form
func (f *Form) View() string {
	width := 0
	for _, fld := range f.fields {
		if w := len([]rune(fld.Label)); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, fld := range f.fields {
		label := fmt.Sprintf("%-*s", width, fld.Label)
		if fld.Required {
			label += "*"
		} else {
			label += " "
		}
		style := f.styles.Label
		if i == f.focus {
			style = f.styles.FocusedLabel
		}
		b.WriteString(style.Render(label))
		b.WriteString("  ")
		b.WriteString(fld.display())
		b.WriteString("\n")
	}

	switch {
	case f.busy:
		b.WriteString("\n" + f.styles.StatusLoading.Render("Submitting..."))
	case f.err != "":
		b.WriteString("\n" + f.styles.StatusError.Render(f.err))
	case f.message != "":
		b.WriteString("\n" + f.styles.StatusSuccess.Render(f.message))
	}
	return strings.TrimRight(b.String(), "\n")
}
