package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/domain"
	"avaliaccess/internal/ui/forms"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/services/query"
	"avaliaccess/internal/ui/services/sorting"
	"avaliaccess/internal/ui/views"
)

const (
	exploreLoadError = "Could not load establishments. Try again."
	defaultListSize  = 12
)

type listingMsg struct {
	from *Explore
	seq  uint64
	page *domain.EstablishmentPage
	err  error
}

type exploreKeys struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Clear  key.Binding
	Sort   key.Binding
	Reload key.Binding
	Edit   key.Binding
	Back   key.Binding
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Next, k.Prev, k.Sort, k.Clear, k.Edit, k.Back}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Open}, {k.Next, k.Prev, k.Sort}, {k.Clear, k.Reload, k.Edit, k.Back}}
}

// Explore is the filtered, paginated establishment listing
type Explore struct {
	frame
	deps    Deps
	query   *query.Service
	sorting *sorting.Service
	form    *forms.Form
	keys    exploreKeys
	spinner spinner.Model
	cards   *views.CardRenderer

	results bool // focus is on the result list
	page    int
	size    int
	cursor  int
	seq     uint64
	loading bool
	err     string
	listing *domain.EstablishmentPage
	closed  bool
}

// NewExplore creates the listing seeded from the route's query string
func NewExplore(route navigation.Route, deps Deps) *Explore {
	q := query.ParseListing(route.Query.Get)
	svc := query.NewService(query.ResetCity)
	svc.Set(q)

	size := defaultListSize
	if deps.Config != nil && deps.Config.Search.ListingPageSize > 0 {
		size = deps.Config.Search.ListingPageSize
	}

	form := forms.New(deps.Styles,
		forms.Text("name", "Name", false),
		forms.Select("type", "Type", withValue(forms.Options(domain.ListingTypes...), q.Filters.Type), false),
		forms.Select("minRating", "Min. rating", domain.RatingOptions, false),
		forms.Select("state", "State", withValue(forms.Options(domain.AllStates...), q.Filters.State), false),
		forms.Text("city", "City", false),
	)
	form.WrapFocus = false
	form.SetValue("name", q.Text)
	form.SetValue("type", q.Filters.Type)
	if q.Filters.MinRating > 0 {
		form.SetValue("minRating", strconv.Itoa(q.Filters.MinRating))
	}
	form.SetValue("state", q.Filters.State)
	form.SetValue("city", q.Filters.City)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Explore{
		deps:    deps,
		query:   svc,
		sorting: sorting.NewService(),
		form:    form,
		spinner: sp,
		cards:   views.NewCardRenderer(deps.Styles),
		size:    size,
		keys: exploreKeys{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
			Next:   key.NewBinding(key.WithKeys("n", "right", "pgdown"), key.WithHelp("n", "next page")),
			Prev:   key.NewBinding(key.WithKeys("p", "left", "pgup"), key.WithHelp("p", "previous page")),
			Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
			Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
			Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
			Edit:   key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "edit filters")),
			Back:   backKey,
		},
	}
}

// withValue appends v to opts when it is not offered, so links from the home filters keep their type
func withValue(opts []domain.Option, v string) []domain.Option {
	if v == "" {
		return opts
	}
	for _, o := range opts {
		if o.Value == v {
			return opts
		}
	}
	return append(opts, domain.Option{Value: v, Label: v})
}

func (e *Explore) Init() tea.Cmd {
	return tea.Batch(e.form.Init(), e.load())
}

func (e *Explore) Close() {
	e.closed = true
	e.form.Blur()
}

func (e *Explore) Title() string { return "Explore" }

func (e *Explore) Typing() bool { return !e.results && e.form.Typing() }

func (e *Explore) KeyMap() help.KeyMap {
	if e.results {
		return e.keys
	}
	return e.form.Keys()
}

// Query returns the applied filters
func (e *Explore) Query() query.Query { return e.query.Current() }

// Listing returns the page on display, nil before the first result
func (e *Explore) Listing() *domain.EstablishmentPage { return e.listing }

// Loading reports whether a request is in flight
func (e *Explore) Loading() bool { return e.loading }

// Err returns the inline error
func (e *Explore) Err() string { return e.err }

func (e *Explore) load() tea.Cmd {
	e.seq++
	seq := e.seq
	e.loading = true
	e.err = ""

	params := query.SearchParams(e.query.Current(), e.page, e.size)
	params.SortBy, params.SortDirection = e.sorting.Params()
	searcher := e.deps.API
	timeout := e.deps.timeout()
	from := e

	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := searcher.Search(ctx, params)
		return listingMsg{from: from, seq: seq, page: page, err: err}
	}
	return tea.Batch(fetch, e.spinner.Tick)
}

func (e *Explore) Update(msg tea.Msg) tea.Cmd {
	if e.closed {
		return nil
	}

	switch msg := msg.(type) {
	case listingMsg:
		if msg.from != e || msg.seq != e.seq {
			return nil
		}
		e.loading = false
		if msg.err != nil {
			e.deps.Logger.WithError(msg.err).Warn("Listing request failed")
			e.err = exploreLoadError
			e.listing = nil
			return nil
		}
		e.listing = msg.page
		e.clampCursor()
		return nil

	case spinner.TickMsg:
		if !e.loading {
			return nil
		}
		var cmd tea.Cmd
		e.spinner, cmd = e.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if e.results {
			return e.handleResultKey(msg)
		}
		return e.handleFormKey(msg)
	}

	cmd, _ := e.form.Update(msg)
	return cmd
}

func (e *Explore) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	cmd, ev := e.form.Update(msg)
	switch ev {
	case forms.EventChanged:
		e.syncFromForm()
	case forms.EventSubmit:
		e.syncFromForm()
		e.page = 0
		e.cursor = 0
		if e.hasItems() {
			e.results = true
			e.form.Blur()
		}
		return tea.Batch(cmd, e.load(), navigation.Sync(query.ListingURL(e.query.Current())))
	case forms.EventCancel:
		return navigation.Back()
	case forms.EventLeave:
		e.results = true
	}
	return cmd
}

func (e *Explore) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, e.keys.Back):
		return navigation.Back()
	case key.Matches(msg, e.keys.Edit):
		e.results = false
		return e.form.Focus(0)
	case key.Matches(msg, e.keys.Up):
		if e.cursor == 0 {
			e.results = false
			return e.form.Focus(-1)
		}
		e.cursor--
	case key.Matches(msg, e.keys.Down):
		e.cursor++
		e.clampCursor()
	case key.Matches(msg, e.keys.Open):
		if e.hasItems() {
			return navigation.Navigate(navigation.DetailPath(e.listing.Content[e.cursor].ID))
		}
	case key.Matches(msg, e.keys.Next):
		if e.listing != nil && e.page+1 < e.listing.TotalPages {
			e.page++
			e.cursor = 0
			return e.load()
		}
	case key.Matches(msg, e.keys.Prev):
		if e.page > 0 {
			e.page--
			e.cursor = 0
			return e.load()
		}
	case key.Matches(msg, e.keys.Clear):
		e.query.ClearText()
		e.query.ClearFilters()
		for _, k := range []string{"name", "type", "minRating", "state", "city"} {
			e.form.SetValue(k, "")
		}
		e.page = 0
		e.cursor = 0
		return tea.Batch(e.load(), navigation.Sync(query.ListingPath))
	case key.Matches(msg, e.keys.Sort):
		e.sorting.Next()
		e.page = 0
		e.cursor = 0
		return e.load()
	case key.Matches(msg, e.keys.Reload):
		return e.load()
	}
	return nil
}

// syncFromForm copies the form into the query. A new state clears the city.
func (e *Explore) syncFromForm() {
	e.query.SetText(e.form.Value("name"))
	e.query.SetType(e.form.Value("type"))
	rating, _ := strconv.Atoi(e.form.Value("minRating"))
	e.query.SetMinRating(rating)

	before := e.query.Filters().State
	e.query.SetState(e.form.Value("state"))
	if e.query.Filters().State != before {
		e.form.SetValue("city", "")
	}
	e.query.SetCity(e.form.Value("city"))
}

func (e *Explore) hasItems() bool {
	return e.listing != nil && len(e.listing.Content) > 0
}

func (e *Explore) clampCursor() {
	n := 0
	if e.listing != nil {
		n = len(e.listing.Content)
	}
	if e.cursor >= n {
		e.cursor = n - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

func (e *Explore) View() string {
	st := e.deps.Styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Explore establishments"))
	b.WriteString("\n\n")
	b.WriteString(e.form.View())
	b.WriteString("\n\n")

	switch {
	case e.loading:
		b.WriteString(st.StatusLoading.Render(e.spinner.View() + " Loading establishments..."))
	case e.err != "":
		b.WriteString(st.StatusError.Render(e.err))
		b.WriteString(st.Dim.Render("  (r to retry)"))
	case !e.hasItems():
		b.WriteString(st.Dim.Render("No establishments match these filters."))
	default:
		b.WriteString(e.renderResults())
	}
	return b.String()
}

func (e *Explore) renderResults() string {
	st := e.deps.Styles
	l := e.listing
	var b strings.Builder

	noun := "establishments"
	if l.TotalElements == 1 {
		noun = "establishment"
	}
	b.WriteString(st.Subtitle.Render(fmt.Sprintf("%d %s found · page %d of %d · %s first",
		l.TotalElements, noun, l.Number+1, max(l.TotalPages, 1), e.sorting)))
	b.WriteString("\n")

	for i, item := range l.Content {
		line := views.SuggestionLine(item)
		if e.results && i == e.cursor {
			b.WriteString(st.SuggestionSel.Render("> " + line))
		} else {
			b.WriteString(st.Suggestion.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if e.results {
		b.WriteString("\n")
		b.WriteString(e.cards.Card(l.Content[e.cursor], true, e.width))
	}
	return strings.TrimRight(b.String(), "\n")
}
