package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"avaliaccess/internal/domain"
)

// CardRenderer renders establishments for the listing and detail screens
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// Card renders one establishment of a listing
func (r *CardRenderer) Card(e domain.EstablishmentSummary, selected bool, width int) string {
	rating := lipgloss.NewStyle().Foreground(lipgloss.Color(RatingColor(e.AverageRating))).
		Render(Stars(e.AverageRating, e.TotalRatings))

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(e.Name))
	b.WriteString("  ")
	b.WriteString(rating)
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%s · %s", e.Type, Location(e))))
	if e.Address != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(e.Address))
	}

	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(b.String())
}

// Features renders the accessibility checklist
func (r *CardRenderer) Features(f domain.AccessibilityFeatures) string {
	lines := make([]string, 0, len(domain.Features))
	for _, info := range domain.Features {
		if info.Get(f) {
			lines = append(lines, r.styles.FeatureOn.Render("✓ "+info.Label))
		} else {
			lines = append(lines, r.styles.FeatureOff.Render("✗ "+info.Label))
		}
	}
	return strings.Join(lines, "\n")
}

// Review renders one review
func (r *CardRenderer) Review(rv domain.Review) string {
	header := fmt.Sprintf("%s  %s", r.styles.Label.Render(rv.UserName), r.styles.Rating.Render(strings.Repeat("★", rv.Rating)))
	if rv.CreatedAt != "" {
		header += "  " + r.styles.Dim.Render(shortDate(rv.CreatedAt))
	}
	if strings.TrimSpace(rv.Comment) == "" {
		return header
	}
	return header + "\n" + rv.Comment
}

// Location renders "City - ST"
func Location(e domain.EstablishmentSummary) string {
	switch {
	case e.City != "" && e.State != "":
		return e.City + " - " + e.State
	case e.City != "":
		return e.City
	default:
		return e.State
	}
}

func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
