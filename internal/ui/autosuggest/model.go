package autosuggest

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/ui/input"
	inputtypes "avaliaccess/internal/ui/input/types"
	"avaliaccess/internal/ui/services/debounce"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/services/query"
	"avaliaccess/internal/ui/services/search"
	"avaliaccess/internal/ui/views"
)

// Options tune the widget
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	PageSize       int
	Timeout        time.Duration
}

type filterField struct {
	label   string
	options func(f query.Filters) []domain.Option
	get     func(f query.Filters) string
	set     func(q *query.Service, value string)
}

var filterFields = []filterField{
	{
		label:   "Type",
		options: func(query.Filters) []domain.Option { return domain.EstablishmentTypes },
		get:     func(f query.Filters) string { return f.Type },
		set:     func(q *query.Service, v string) { q.SetType(v) },
	},
	{
		label:   "Rating",
		options: func(query.Filters) []domain.Option { return domain.RatingOptions },
		get: func(f query.Filters) string {
			if f.MinRating == 0 {
				return ""
			}
			return strconv.Itoa(f.MinRating)
		},
		set: func(q *query.Service, v string) {
			n, _ := strconv.Atoi(v)
			q.SetMinRating(n)
		},
	},
	{
		label:   "State",
		options: func(query.Filters) []domain.Option { return domain.States },
		get:     func(f query.Filters) string { return f.State },
		set:     func(q *query.Service, v string) { q.SetState(v) },
	},
	{
		label:   "City",
		options: func(f query.Filters) []domain.Option { return domain.CitiesFor(f.State) },
		get:     func(f query.Filters) string { return f.City },
		set:     func(q *query.Service, v string) { q.SetCity(v) },
	},
}

// Model is the establishment search box with its filter bar and suggestion dropdown
type Model struct {
	input    textinput.Model
	query    *query.Service
	debounce *debounce.Debouncer
	search   *search.Service
	detector *Detector
	handler  *input.Handler
	dropdown *views.Dropdown
	styles   *views.Styles
	logger   logrus.FieldLogger

	cursor      int // highlighted suggestion
	filterFocus int
	x, y        int // top-left cell of the widget on screen
	width       int
	closed      bool
}

// New creates the widget. It observes the mouse once Init has run.
func New(searcher search.Searcher, bus eventbus.EventBus, logger logrus.FieldLogger, styles *views.Styles, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search establishments..."
	ti.Prompt = ""
	ti.CharLimit = 120

	suggestions := search.NewService(searcher, bus, logger, search.Options{
		MinQueryLength: opts.MinQueryLength,
		PageSize:       opts.PageSize,
		Timeout:        opts.Timeout,
	})
	m := &Model{
		input:    ti,
		query:    query.NewService(query.KeepCity),
		debounce: debounce.New("autosuggest/"+suggestions.ID(), opts.Debounce),
		search:   suggestions,
		dropdown: views.NewDropdown(styles),
		styles:   styles,
		logger:   logger,
		width:    80,
	}
	m.handler = input.New(&m.input)
	m.detector = NewDetector(m.Bounds, m.search.Hide)
	return m
}

// Init mounts the widget
func (m *Model) Init() tea.Cmd {
	m.detector.Attach()
	return m.input.Focus()
}

// Close tears the widget down. Pending timers never fire and late results are dropped.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.debounce.Stop()
	m.search.Close()
	m.detector.Detach()
	m.input.Blur()
}

// SetOrigin records where the widget is drawn, for mouse hit-testing
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// SetWidth sets the available width
func (m *Model) SetWidth(w int) {
	if w > 0 {
		m.width = w
		m.input.Width = w - 10
	}
}

// Bounds returns the widget's screen region, dropdown included when open
func (m *Model) Bounds() Rect {
	rows := 0
	if st := m.search.State(); st.Visible {
		rows = len(st.Items)
	}
	return Rect{X: m.x, Y: m.y, Width: m.width, Height: m.headerHeight() + rows}
}

// Query returns the current query
func (m *Model) Query() query.Query {
	return m.query.Current()
}

// Suggestions returns the suggestion list
func (m *Model) Suggestions() search.State {
	return m.search.State()
}

// Typing reports whether keys go to the text input
func (m *Model) Typing() bool {
	return m.handler.CurrentMode() != inputtypes.ModeFilters
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.closed {
		return nil
	}

	switch msg := msg.(type) {
	case debounce.FiredMsg:
		if !m.debounce.Accept(msg) {
			return nil
		}
		// evaluate the query as it is now, not as it was when scheduled
		return m.search.Trigger(m.query.Current())

	case search.ResultMsg:
		if m.search.Apply(msg) {
			m.clampCursor()
		}
		return m.syncMode()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, cmd, _ := m.handler.HandleKey(msg, m)
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	cmds = append(cmds, m.syncMode())
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.detector.Observe(msg) {
		return m.syncMode()
	}

	row := msg.Y - m.y - m.headerHeight()
	if st := m.search.State(); st.Visible && row >= 0 && row < len(st.Items) {
		return m.selectSuggestion(row)
	}
	if msg.Y == m.y {
		_, cmd := m.handler.SetMode(inputtypes.ModeTyping, m)
		return cmd
	}
	return nil
}

// processAction executes one action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.query.SetText(a.Text)
		return m.debounce.Schedule()

	case inputtypes.SubmitAction:
		return m.submit()

	case inputtypes.MoveCursorAction:
		m.cursor += a.Delta
		m.clampCursor()

	case inputtypes.SelectSuggestionAction:
		return m.selectSuggestion(a.Index)

	case inputtypes.HideSuggestionsAction:
		m.search.Hide()

	case inputtypes.FocusFilterAction:
		n := len(filterFields)
		m.filterFocus = ((m.filterFocus+a.Delta)%n + n) % n

	case inputtypes.CycleFilterAction:
		m.cycleFilter(a.Delta)
		return m.debounce.Schedule()

	case inputtypes.ClearFilterAction:
		filterFields[m.filterFocus].set(m.query, "")
		return m.debounce.Schedule()
	}
	return nil
}

// selectSuggestion ends the search session and opens the establishment
func (m *Model) selectSuggestion(index int) tea.Cmd {
	items := m.search.State().Items
	if index < 0 || index >= len(items) {
		return nil
	}
	id := items[index].ID

	m.debounce.Cancel()
	m.input.SetValue("")
	m.query.ClearText()
	m.search.Clear()
	m.cursor = 0
	_, cmd := m.handler.SetMode(inputtypes.ModeTyping, m)

	m.logger.WithField("id", id).Debug("Suggestion selected")
	return tea.Batch(cmd, navigation.Navigate(navigation.DetailPath(id)))
}

// submit ignores the suggestions and opens the filtered listing
func (m *Model) submit() tea.Cmd {
	m.debounce.Cancel()
	m.search.Clear()
	m.cursor = 0
	_, cmd := m.handler.SetMode(inputtypes.ModeTyping, m)
	return tea.Batch(cmd, navigation.Navigate(query.ListingURL(m.query.Current())))
}

func (m *Model) cycleFilter(delta int) {
	field := filterFields[m.filterFocus]
	f := m.query.Filters()
	opts := append([]domain.Option{{Value: "", Label: "Any"}}, field.options(f)...)

	current := 0
	for i, o := range opts {
		if o.Value == field.get(f) {
			current = i
			break
		}
	}
	n := len(opts)
	next := ((current+delta)%n + n) % n
	field.set(m.query, opts[next].Value)
}

func (m *Model) clampCursor() {
	n := len(m.search.State().Items)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// syncMode leaves the suggestion mode when the dropdown has closed
func (m *Model) syncMode() tea.Cmd {
	if m.handler.CurrentMode() == inputtypes.ModeSuggestions && !m.search.Visible() {
		_, cmd := m.handler.SetMode(inputtypes.ModeTyping, m)
		return cmd
	}
	return nil
}

// input context

func (m *Model) SuggestionsVisible() bool { return m.search.Visible() }
func (m *Model) SuggestionCount() int     { return len(m.search.State().Items) }
func (m *Model) SuggestionCursor() int    { return m.cursor }
func (m *Model) FilterFocus() int         { return m.filterFocus }
func (m *Model) FilterCount() int         { return len(filterFields) }

// View renders the widget
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())

	if st := m.search.State(); st.Visible {
		b.WriteString("\n")
		highlight := m.handler.CurrentMode() == inputtypes.ModeSuggestions
		b.WriteString(m.dropdown.Render(st.Items, m.cursor, highlight, m.width))
	}
	return b.String()
}

// header renders the input line and the filter bar, wrapped to the widget width
func (m *Model) header() string {
	label := m.styles.Label
	if m.handler.CurrentMode() != inputtypes.ModeFilters {
		label = m.styles.FocusedLabel
	}
	line := label.Render("Search: ") + m.input.View()
	bar := lipgloss.NewStyle().Width(m.width).Render(m.renderFilters())
	return line + "\n" + bar
}

// headerHeight is the number of lines above the dropdown
func (m *Model) headerHeight() int {
	return lipgloss.Height(m.header())
}

func (m *Model) renderFilters() string {
	f := m.query.Filters()
	parts := make([]string, len(filterFields))
	for i, field := range filterFields {
		text := field.label + ": " + optionLabel(field.options(f), field.get(f))
		style := m.styles.Filter
		if m.handler.CurrentMode() == inputtypes.ModeFilters && i == m.filterFocus {
			style = m.styles.FocusedFilter
		}
		parts[i] = style.Render(text)
	}
	return strings.Join(parts, m.styles.Dim.Render(" │ "))
}

func optionLabel(opts []domain.Option, value string) string {
	if value == "" {
		return "Any"
	}
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
