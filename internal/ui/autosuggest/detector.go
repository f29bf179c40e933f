package autosuggest

import tea "github.com/charmbracelet/bubbletea"

// Rect is a screen region in cells
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Detector sees every mouse press before the widget's own handlers and reports presses
// outside the widget's bounds. It only ever closes the dropdown.
type Detector struct {
	bounds    func() Rect
	onOutside func()
	attached  bool
}

// NewDetector creates a detached detector
func NewDetector(bounds func() Rect, onOutside func()) *Detector {
	return &Detector{bounds: bounds, onOutside: onOutside}
}

// Attach starts observing presses
func (d *Detector) Attach() {
	d.attached = true
}

// Detach stops observing presses
func (d *Detector) Detach() {
	d.attached = false
}

// Attached reports whether the detector is observing
func (d *Detector) Attached() bool {
	return d.attached
}

// Observe inspects msg and reports whether it is a press inside the widget.
// Presses outside trigger the close callback.
func (d *Detector) Observe(msg tea.MouseMsg) (inside bool) {
	if !d.attached || msg.Action != tea.MouseActionPress {
		return false
	}
	if d.bounds().Contains(msg.X, msg.Y) {
		return true
	}
	if d.onOutside != nil {
		d.onOutside()
	}
	return false
}
