package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Value         lipgloss.Style
	Filter        lipgloss.Style
	FocusedFilter lipgloss.Style
	Dropdown      lipgloss.Style
	Suggestion    lipgloss.Style
	SuggestionSel lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Rating        lipgloss.Style
	FeatureOn     lipgloss.Style
	FeatureOff    lipgloss.Style
	Popup         lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusedLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		Value:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Filter:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		FocusedFilter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true).Bold(true),
		Dropdown:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Suggestion:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SuggestionSel: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Help:       lipgloss.NewStyle().Faint(true),
		Main:       lipgloss.NewStyle().Padding(1, 2),
		Rating:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		FeatureOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		FeatureOff: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// RatingColor returns the color for an average rating
func RatingColor(rating float64) string {
	switch {
	case rating >= 4:
		return "78" // green
	case rating >= 2.5:
		return "214" // yellow
	case rating > 0:
		return "203" // red
	default:
		return "241" // unrated
	}
}
