package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer builds the help document shown in the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// Render returns the help for the current screen followed by the global keys
func (r *HelpRenderer) Render(screen string, screenKeys help.KeyMap, global []key.Binding) string {
	var b strings.Builder
	b.WriteString(r.title.Render("AvaliAccess Help"))
	b.WriteString("\n")

	if screenKeys != nil {
		var bindings []key.Binding
		for _, group := range screenKeys.FullHelp() {
			bindings = append(bindings, group...)
		}
		r.writeSection(&b, screen, bindings)
	}
	r.writeSection(&b, "Everywhere", global)

	b.WriteString("\n")
	b.WriteString(r.note.Render("  Search suggestions appear after 2 characters; enter opens the full listing."))
	b.WriteString("\n")
	b.WriteString(r.note.Render("  Reviewing and registering places require logging in."))
	b.WriteString("\n")
	return b.String()
}

func (r *HelpRenderer) writeSection(b *strings.Builder, name string, bindings []key.Binding) {
	b.WriteString(r.section.Render(name))
	b.WriteString("\n")

	width := 0
	for _, k := range bindings {
		if w := lipgloss.Width(k.Help().Key); w > width {
			width = w
		}
	}
	for _, k := range bindings {
		if !k.Enabled() || k.Help().Key == "" {
			continue
		}
		h := k.Help()
		pad := strings.Repeat(" ", width-lipgloss.Width(h.Key))
		fmt.Fprintf(b, "  %s%s  %s\n", r.key.Render(h.Key), pad, r.desc.Render(h.Desc))
	}
}
