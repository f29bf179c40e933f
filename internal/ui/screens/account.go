package screens

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/api"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/ui/forms"
	"avaliaccess/internal/ui/services/navigation"
)

type accountResultMsg struct {
	from *account
	user *domain.UserProfile
	err  error
}

// accountCall runs the authentication request with values captured from the form
type accountCall func(ctx context.Context) (*domain.UserProfile, error)

type accountKeys struct {
	forms.KeyMap
	Switch key.Binding
}

func (k accountKeys) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Switch)
}

func (k accountKeys) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Switch})
}

// account is the shared body of the login and register screens
type account struct {
	frame
	deps     Deps
	form     *forms.Form
	keys     accountKeys
	title    string
	intro    string
	switchTo string
	submit   func() accountCall
	validate func() string
	closed   bool
}

// Login signs an existing user in
type Login struct{ account }

// Register creates an account and signs it in
type Register struct{ account }

// NewLogin creates the login screen
func NewLogin(deps Deps) *Login {
	l := &Login{account{
		deps:     deps,
		title:    "Log in",
		intro:    "Log in to review places and register new ones.",
		switchTo: "/register",
		form: forms.New(deps.Styles,
			forms.Text("email", "Email", true),
			forms.Password("password", "Password"),
		),
		keys: accountKeys{
			KeyMap: forms.DefaultKeyMap(),
			Switch: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
		},
	}}
	l.submit = func() accountCall {
		email, password := l.form.Value("email"), l.form.Value("password")
		return func(ctx context.Context) (*domain.UserProfile, error) {
			return deps.Auth.Login(ctx, email, password)
		}
	}
	return l
}

// NewRegister creates the sign-up screen
func NewRegister(deps Deps) *Register {
	r := &Register{account{
		deps:     deps,
		title:    "Create account",
		intro:    "Passwords need at least 6 characters.",
		switchTo: "/login",
		form: forms.New(deps.Styles,
			forms.Text("name", "Name", true),
			forms.Text("email", "Email", true),
			forms.Password("password", "Password"),
			forms.Password("confirm", "Confirm password"),
		),
		keys: accountKeys{
			KeyMap: forms.DefaultKeyMap(),
			Switch: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "log in instead")),
		},
	}}
	r.validate = func() string {
		if len(r.form.Value("password")) < 6 {
			return "Password must have at least 6 characters."
		}
		if r.form.Value("password") != r.form.Value("confirm") {
			return "Passwords do not match."
		}
		return ""
	}
	r.submit = func() accountCall {
		name, email, password := r.form.Value("name"), r.form.Value("email"), r.form.Value("password")
		return func(ctx context.Context) (*domain.UserProfile, error) {
			return deps.Auth.Register(ctx, name, email, password)
		}
	}
	return r
}

func (a *account) Init() tea.Cmd { return a.form.Init() }

func (a *account) Close() {
	a.closed = true
	a.form.Blur()
}

func (a *account) Title() string { return a.title }

func (a *account) Typing() bool { return a.form.Typing() }

func (a *account) KeyMap() help.KeyMap { return a.keys }

// Form exposes the form
func (a *account) Form() *forms.Form { return a.form }

func (a *account) Update(msg tea.Msg) tea.Cmd {
	if a.closed {
		return nil
	}

	switch msg := msg.(type) {
	case accountResultMsg:
		if msg.from != a {
			return nil
		}
		a.form.SetBusy(false)
		if msg.err != nil {
			a.deps.Logger.WithError(msg.err).Warn("Authentication failed")
			a.form.SetError(accountError(msg.err))
			return nil
		}
		user := msg.user
		return func() tea.Msg { return AuthenticatedMsg{User: user} }

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Switch) && !a.form.Busy() {
			return navigation.Redirect(a.switchTo)
		}
		cmd, ev := a.form.Update(msg)
		switch ev {
		case forms.EventSubmit:
			return a.start()
		case forms.EventCancel:
			return navigation.Back()
		case forms.EventChanged:
			a.form.SetError("")
		}
		return cmd
	}

	cmd, _ := a.form.Update(msg)
	return cmd
}

func (a *account) start() tea.Cmd {
	if err := a.form.Validate(); err != nil {
		a.form.SetError(capitalize(err.Error()))
		return nil
	}
	if a.validate != nil {
		if problem := a.validate(); problem != "" {
			a.form.SetError(problem)
			return nil
		}
	}

	a.form.SetError("")
	a.form.SetBusy(true)
	call := a.submit()
	timeout := a.deps.timeout()
	from := a
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := call(ctx)
		return accountResultMsg{from: from, user: user, err: err}
	}
}

func (a *account) View() string {
	st := a.deps.Styles
	var b strings.Builder
	b.WriteString(st.Title.Render(a.title))
	b.WriteString("\n")
	b.WriteString(st.Dim.Render(a.intro))
	b.WriteString("\n\n")
	b.WriteString(a.form.View())
	return b.String()
}

func accountError(err error) string {
	if api.StatusCode(err) == http.StatusUnauthorized {
		return "Invalid email or password."
	}
	return api.UserMessage(err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
