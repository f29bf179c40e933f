package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"avaliaccess/internal/api"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/ui/screens"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/views"
)

const (
	appBarLines   = 2
	footerLines   = 2
	mainPadding   = 2
	statusTimeout = 3 * time.Second
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

type globalKeys struct {
	Quit   key.Binding
	Help   key.Binding
	Logout key.Binding
}

func (k globalKeys) bindings() []key.Binding {
	return []key.Binding{k.Help, k.Logout, k.Quit}
}

// footerKeys merges the screen's bindings with the global ones for the help line
type footerKeys struct {
	screen help.KeyMap
	global globalKeys
}

func (k footerKeys) ShortHelp() []key.Binding {
	return append(k.screen.ShortHelp(), k.global.Help, k.global.Quit)
}

func (k footerKeys) FullHelp() [][]key.Binding {
	return append(k.screen.FullHelp(), k.global.bindings())
}

// Model is the root of the application: it owns the route history and the mounted screen
type Model struct {
	deps   screens.Deps
	nav    *navigation.Service
	screen screens.Screen
	keys   globalKeys

	width       int
	height      int
	help        help.Model
	helpDoc     *HelpRenderer
	popups      *views.PopupRenderer
	pager       *PagerOps
	inPagerMode bool // tracks if we're currently in pager mode

	// pendingAuth is the route to open once the user has logged in
	pendingAuth string

	status     string
	statusKind statusKind
	statusID   int

	popup       string
	popupOffset int

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the root model on the home screen
func NewModel(deps screens.Deps) *Model {
	if deps.Bus == nil {
		deps.Bus = eventbus.NopBus{}
	}
	if deps.Styles == nil {
		deps.Styles = views.NewStyles()
	}

	m := &Model{
		deps:    deps,
		nav:     navigation.NewService(deps.Bus, deps.Logger),
		help:    help.New(),
		helpDoc: NewHelpRenderer(),
		popups:  views.NewPopupRenderer(deps.Styles),
		pager:   NewPagerOps(),
		keys: globalKeys{
			Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
			Help:   key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
			Logout: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
		},
	}
	m.screen = screens.New(m.nav.Current(), deps)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Route returns the active route
func (m *Model) Route() navigation.Route {
	return m.nav.Current()
}

// Screen returns the mounted screen
func (m *Model) Screen() screens.Screen {
	return m.screen
}

// Init mounts the first screen and validates a persisted session
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("AvaliAccess"), m.screen.Init(), m.restoreSession())
}

func (m *Model) restoreSession() tea.Cmd {
	if m.deps.Auth == nil || !m.deps.Auth.Session().LoggedIn() {
		return nil
	}
	svc := m.deps.Auth
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := svc.Restore(ctx)
		return sessionRestoredMsg{user: user, err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case navigation.NavigateMsg:
		return m, m.open(msg.Path, msg.Replace)

	case navigation.SyncMsg:
		// the screen already shows this state
		m.nav.Replace(msg.Path)
		return m, nil

	case navigation.BackMsg:
		route, ok := m.nav.Back()
		if !ok {
			return m, nil
		}
		return m, m.mount(route)

	case screens.AuthenticatedMsg:
		target := m.pendingAuth
		if target == "" {
			target = "/"
		}
		m.pendingAuth = ""
		name := "back"
		if msg.User != nil && msg.User.Name != "" {
			name = msg.User.Name
		}
		return m, tea.Batch(m.setStatus("Welcome, "+name, statusSuccess), m.open(target, true))

	case screens.ShowPagerMsg:
		return m, m.showPager(msg.Content)

	case sessionRestoredMsg:
		if msg.err != nil {
			m.deps.Logger.WithError(msg.err).Warn("Session restore failed")
			if api.IsUnauthorized(msg.err) {
				return m, m.setStatus("Your session has expired. Log in again.", statusWarning)
			}
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			m.deps.Logger.WithError(msg.err).Warn("Pager failed, falling back to popup")
			m.popup = msg.content
			m.popupOffset = 0
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, m.screen.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.screen.Close()
		return tea.Quit
	}

	if m.popup != "" {
		switch msg.String() {
		case "esc", "q", "enter":
			m.popup = ""
		case "up", "k":
			if m.popupOffset > 0 {
				m.popupOffset--
			}
		case "down", "j":
			m.popupOffset++
		}
		return nil
	}

	switch {
	case msg.Type == tea.KeyF1, key.Matches(msg, m.keys.Help) && !m.screen.Typing():
		content := m.helpDoc.Render(m.screen.Title(), m.screen.KeyMap(), m.keys.bindings())
		return m.showPager(content)
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	}
	return m.screen.Update(msg)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ReviewSubmittedEvent:
		return m.setStatus("Review submitted. Thank you!", statusSuccess)
	case eventbus.EstablishmentCreatedEvent:
		return m.setStatus(fmt.Sprintf("%s registered", e.Establishment.Name), statusSuccess)
	case eventbus.LoggedOutEvent:
		if m.nav.Current().RequiresAuth() {
			return m.mount(m.nav.Reset())
		}
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, statusError)
	}
	return nil
}

// open navigates to path, detouring through the login screen for protected routes
func (m *Model) open(path string, replace bool) tea.Cmd {
	target := navigation.Parse(path)
	if target.RequiresAuth() && !m.loggedIn() {
		m.pendingAuth = target.Path
		path = "/login"
	}

	var route navigation.Route
	if replace {
		route = m.nav.Replace(path)
	} else {
		route = m.nav.Navigate(path)
	}
	return m.mount(route)
}

// mount tears down the current screen and builds the one for route
func (m *Model) mount(route navigation.Route) tea.Cmd {
	if m.screen != nil {
		m.screen.Close()
	}
	m.screen = screens.New(route, m.deps)
	m.layout()
	return m.screen.Init()
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	body := m.height - appBarLines - footerLines
	if body < 1 {
		body = 1
	}
	m.screen.SetFrame(mainPadding, appBarLines, m.width-2*mainPadding, body)
}

func (m *Model) logout() tea.Cmd {
	if !m.loggedIn() {
		return m.setStatus("You are not logged in.", statusInfo)
	}
	if err := m.deps.Auth.Logout(); err != nil {
		m.deps.Logger.WithError(err).Error("Logout failed")
		return m.setStatus("Could not log out: "+err.Error(), statusError)
	}
	cmd := m.setStatus("Logged out.", statusInfo)
	if m.nav.Current().RequiresAuth() {
		return tea.Batch(cmd, m.mount(m.nav.Reset()))
	}
	return cmd
}

// showPager returns a command that shows content using ov, pausing rendering meanwhile
func (m *Model) showPager(content string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg {
			return pagerMsg{content: content, err: fmt.Errorf("program not set")}
		}
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{content: content, err: err}
	}
}

func (m *Model) setStatus(text string, kind statusKind) tea.Cmd {
	m.statusID++
	id := m.statusID
	m.status = text
	m.statusKind = kind
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} })
}

func (m *Model) loggedIn() bool {
	return m.deps.Auth != nil && m.deps.Auth.Session().LoggedIn()
}

func (m *Model) requestTimeout() time.Duration {
	if m.deps.Config != nil && m.deps.Config.Search.RequestTimeout() > 0 {
		return m.deps.Config.Search.RequestTimeout()
	}
	return 10 * time.Second
}

// View renders the app bar, the screen, and the status and help lines
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	body := m.height - appBarLines - footerLines
	if body < 1 {
		body = 1
	}
	main := lipgloss.NewStyle().
		PaddingLeft(mainPadding).
		Width(m.width).
		Height(body).
		MaxHeight(body).
		Render(m.screen.View())

	full := lipgloss.JoinVertical(lipgloss.Left,
		m.renderAppBar(),
		"",
		main,
		m.renderStatus(),
		m.help.View(footerKeys{screen: m.screen.KeyMap(), global: m.keys}),
	)

	if m.popup != "" {
		return m.popups.RenderPopupOverlay(full, m.popupContent(), m.height, m.width)
	}
	return full
}

func (m *Model) renderAppBar() string {
	st := m.deps.Styles
	left := st.Title.Render("AvaliAccess") + st.Dim.Render(" · "+m.screen.Title())

	user := "not logged in"
	if m.loggedIn() {
		user = "logged in"
		if u := m.deps.Auth.Session().User(); u != nil && u.Name != "" {
			user = u.Name
		}
	}
	right := st.Status.Render(user)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	st := m.deps.Styles
	switch m.statusKind {
	case statusSuccess:
		return st.StatusSuccess.Render(m.status)
	case statusWarning:
		return st.StatusWarning.Render(m.status)
	case statusError:
		return st.StatusError.Render(m.status)
	default:
		return st.Status.Render(m.status)
	}
}

// popupContent windows the popup text to the screen height
func (m *Model) popupContent() string {
	lines := strings.Split(strings.TrimRight(m.popup, "\n"), "\n")
	visible := m.height - 8
	if visible < 3 {
		visible = 3
	}
	if len(lines) <= visible {
		return m.popup
	}
	maxOffset := len(lines) - visible
	if m.popupOffset > maxOffset {
		m.popupOffset = maxOffset
	}
	window := lines[m.popupOffset : m.popupOffset+visible]
	return strings.Join(window, "\n") + "\n" + m.deps.Styles.Dim.Render("↑/↓ scroll · esc close")
}
