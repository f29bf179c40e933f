package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"avaliaccess/internal/domain"
)

// Dropdown renders the suggestion list. Each item takes exactly one line.
type Dropdown struct {
	styles *Styles
}

// NewDropdown creates a dropdown renderer
func NewDropdown(styles *Styles) *Dropdown {
	return &Dropdown{styles: styles}
}

// Render returns one line per item, the highlighted one marked. Nothing is rendered for no items.
func (d *Dropdown) Render(items []domain.EstablishmentSummary, cursor int, highlight bool, width int) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, len(items))
	for i, item := range items {
		line := SuggestionLine(item)
		if width > 4 && lipgloss.Width(line) > width-2 {
			line = truncate(line, width-2)
		}
		if highlight && i == cursor {
			lines[i] = d.styles.SuggestionSel.Render("> " + line)
		} else {
			lines[i] = d.styles.Suggestion.Render("  " + line)
		}
	}
	return strings.Join(lines, "\n")
}

// SuggestionLine is the plain text of one suggestion row
func SuggestionLine(item domain.EstablishmentSummary) string {
	place := item.City
	if item.State != "" {
		place = strings.TrimSpace(place + " - " + item.State)
	}
	return fmt.Sprintf("%s · %s · %s · %s", item.Name, place, item.Type, Stars(item.AverageRating, item.TotalRatings))
}

// Stars renders an average rating like "★ 4.5 (12)"
func Stars(avg float64, total int) string {
	if total == 0 {
		return "no ratings"
	}
	return fmt.Sprintf("★ %.1f (%d)", avg, total)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
