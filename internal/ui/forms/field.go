package forms

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"avaliaccess/internal/domain"
)

// Kind is the kind of input a field takes
type Kind int

const (
	KindText Kind = iota
	KindPassword
	KindSelect
	KindToggle
)

// Field is one labelled input of a form
type Field struct {
	Key      string
	Label    string
	Kind     Kind
	Required bool

	input    textinput.Model
	options  []domain.Option
	selected int // index into options, -1 for none
	checked  bool
}

// Text creates a free-text field
func Text(key, label string, required bool) *Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 255
	return &Field{Key: key, Label: label, Kind: KindText, Required: required, input: ti, selected: -1}
}

// Password creates a masked text field
func Password(key, label string) *Field {
	f := Text(key, label, true)
	f.Kind = KindPassword
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

// Select creates a field cycling through options. Optional selects start empty.
func Select(key, label string, options []domain.Option, required bool) *Field {
	return &Field{Key: key, Label: label, Kind: KindSelect, Required: required, options: options, selected: -1}
}

// Toggle creates a yes/no field
func Toggle(key, label string) *Field {
	return &Field{Key: key, Label: label, Kind: KindToggle, selected: -1}
}

// Value returns the field's current value; "true"/"false" for toggles
func (f *Field) Value() string {
	switch f.Kind {
	case KindSelect:
		if f.selected < 0 || f.selected >= len(f.options) {
			return ""
		}
		return f.options[f.selected].Value
	case KindToggle:
		if f.checked {
			return "true"
		}
		return "false"
	default:
		return f.input.Value()
	}
}

// SetValue replaces the value. Unknown select values clear the selection.
func (f *Field) SetValue(v string) {
	switch f.Kind {
	case KindSelect:
		f.selected = -1
		for i, o := range f.options {
			if o.Value == v {
				f.selected = i
				break
			}
		}
	case KindToggle:
		f.checked = v == "true"
	default:
		f.input.SetValue(v)
	}
}

// Checked reports a toggle's state
func (f *Field) Checked() bool {
	return f.checked
}

// SetOptions replaces a select's options, keeping the value when still offered
func (f *Field) SetOptions(options []domain.Option) {
	current := f.Value()
	f.options = options
	f.SetValue(current)
}

// Blank reports whether the field has no value
func (f *Field) Blank() bool {
	if f.Kind == KindToggle {
		return false
	}
	return strings.TrimSpace(f.Value()) == ""
}

func (f *Field) cycle(delta int) {
	n := len(f.options)
	if n == 0 {
		return
	}
	if f.Required {
		switch {
		case f.selected >= 0:
			f.selected = ((f.selected+delta)%n + n) % n
		case delta > 0:
			f.selected = 0
		default:
			f.selected = n - 1
		}
		return
	}
	// optional selects have a "none" slot before the first option
	pos := ((f.selected+1+delta)%(n+1) + n + 1) % (n + 1)
	f.selected = pos - 1
}

func (f *Field) display() string {
	switch f.Kind {
	case KindSelect:
		if f.selected < 0 || f.selected >= len(f.options) {
			return "‹ none ›"
		}
		return "‹ " + f.options[f.selected].Label + " ›"
	case KindToggle:
		if f.checked {
			return "[x]"
		}
		return "[ ]"
	default:
		return f.input.View()
	}
}

// Options builds select options whose value and label are the same
func Options(values ...string) []domain.Option {
	opts := make([]domain.Option, len(values))
	for i, v := range values {
		opts[i] = domain.Option{Value: v, Label: v}
	}
	return opts
}
