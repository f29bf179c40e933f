package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"avaliaccess/internal/api"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/ui/autosuggest"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/views"
)

const featuredCount = 5

type featuredMsg struct {
	from *Home
	page *domain.EstablishmentPage
	err  error
}

// Home is the landing screen with the establishment search
type Home struct {
	frame
	deps     Deps
	search   *autosuggest.Model
	keys     homeKeys
	featured []domain.EstablishmentSummary
}

type homeKeys struct {
	Explore  key.Binding
	Login    key.Binding
	Register key.Binding
	Place    key.Binding
	Filters  key.Binding
	Submit   key.Binding
}

func (k homeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Filters, k.Explore, k.Place, k.Login, k.Register}
}

func (k homeKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// NewHome creates the home screen
func NewHome(deps Deps) *Home {
	cfg := deps.Config.Search
	return &Home{
		deps: deps,
		search: autosuggest.New(deps.API, deps.Bus, deps.Logger, deps.Styles, autosuggest.Options{
			Debounce:       cfg.Debounce(),
			MinQueryLength: cfg.MinQueryLength,
			PageSize:       cfg.SuggestionPageSize,
			Timeout:        cfg.RequestTimeout(),
		}),
		keys: homeKeys{
			Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			Filters:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filters")),
			Explore:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "explore")),
			Place:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "add place")),
			Login:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "login")),
			Register: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sign up")),
		},
	}
}

func (h *Home) Init() tea.Cmd { return tea.Batch(h.search.Init(), h.loadFeatured()) }

// Featured returns the top rated establishments shown under the search
func (h *Home) Featured() []domain.EstablishmentSummary { return h.featured }

func (h *Home) loadFeatured() tea.Cmd {
	searcher := h.deps.API
	timeout := h.deps.timeout()
	from := h
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := searcher.Search(ctx, api.SearchParams{
			Size:          featuredCount,
			SortBy:        "averageRating",
			SortDirection: "desc",
		})
		return featuredMsg{from: from, page: page, err: err}
	}
}

func (h *Home) Close() { h.search.Close() }

func (h *Home) Title() string { return "Home" }

func (h *Home) Typing() bool { return h.search.Typing() }

func (h *Home) KeyMap() help.KeyMap { return h.keys }

func (h *Home) SetFrame(x, y, width, height int) {
	h.frame.SetFrame(x, y, width, height)
	h.search.SetWidth(width)
	// the intro is followed by a blank line
	h.search.SetOrigin(x, y+lipgloss.Height(h.intro())+1)
}

func (h *Home) Update(msg tea.Msg) tea.Cmd {
	if f, ok := msg.(featuredMsg); ok {
		if f.from != h {
			return nil
		}
		if f.err != nil {
			// the search works without the list
			h.deps.Logger.WithError(f.err).Debug("Could not load featured establishments")
			return nil
		}
		if f.page != nil {
			h.featured = f.page.Content
		}
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, h.keys.Explore):
			return navigation.Navigate("/explore")
		case key.Matches(k, h.keys.Place):
			return navigation.Navigate("/register-place")
		case key.Matches(k, h.keys.Login):
			return navigation.Navigate("/login")
		case key.Matches(k, h.keys.Register):
			return navigation.Navigate("/register")
		}
	}
	return h.search.Update(msg)
}

// intro renders the title and the tagline, wrapped to the screen width
func (h *Home) intro() string {
	st := h.deps.Styles
	tagline := st.Dim.Render("Ramps, accessible restrooms, elevators and more, rated by the community.")
	if h.width > 0 {
		tagline = lipgloss.NewStyle().Width(h.width).Render(tagline)
	}
	return st.Title.Render("Find accessible places") + "\n" + tagline
}

func (h *Home) View() string {
	st := h.deps.Styles
	var b strings.Builder
	b.WriteString(h.intro())
	b.WriteString("\n\n")
	b.WriteString(h.search.View())

	if len(h.featured) > 0 {
		b.WriteString("\n\n")
		b.WriteString(st.Subtitle.Render("Top rated"))
		for _, e := range h.featured {
			b.WriteString("\n")
			b.WriteString(st.Suggestion.Render("  " + views.SuggestionLine(e)))
		}
		b.WriteString("\n")
		b.WriteString(st.Dim.Render("ctrl+x explores every establishment"))
	}
	return b.String()
}
