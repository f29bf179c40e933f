package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over a dimmed copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int) string {
	styledPopup := pr.styles.Popup.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	modal := strings.Split(styledPopup, "\n")
	modalW := lipgloss.Width(styledPopup)
	y := (height - len(modal)) / 2
	if y < 0 {
		y = 0
	}
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}

	// modal lines replace whole base lines; partial overwrite would split ANSI sequences
	pad := strings.Repeat(" ", x)
	for i, line := range modal {
		if y+i < len(base) {
			base[y+i] = pad + line
		}
	}
	return strings.Join(base[:height], "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color/style codes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(StripANSI(s), "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = gray.Render(line)
	}
	return strings.Join(lines, "\n")
}
