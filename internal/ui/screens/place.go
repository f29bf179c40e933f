package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/api"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/ui/forms"
	"avaliaccess/internal/ui/services/navigation"
)

const sessionExpired = "Your session has expired. Log in again."

type placeCreatedMsg struct {
	from *RegisterPlace
	est  *domain.EstablishmentSummary
	err  error
}

// RegisterPlace is the form for adding an establishment
type RegisterPlace struct {
	frame
	deps   Deps
	form   *forms.Form
	closed bool
}

// NewRegisterPlace creates the registration form
func NewRegisterPlace(deps Deps) *RegisterPlace {
	return &RegisterPlace{
		deps: deps,
		form: forms.New(deps.Styles,
			forms.Text("name", "Name", true),
			forms.Text("address", "Address", false),
			forms.Text("city", "City", true),
			forms.Select("state", "State", forms.Options(domain.AllStates...), true),
			forms.Select("type", "Type", forms.Options(domain.ListingTypes...), true),
			forms.Text("photo", "Photo file", false),
		),
	}
}

func (p *RegisterPlace) Init() tea.Cmd { return p.form.Init() }

func (p *RegisterPlace) Close() {
	p.closed = true
	p.form.Blur()
}

func (p *RegisterPlace) Title() string { return "Register place" }

func (p *RegisterPlace) Typing() bool { return p.form.Typing() }

func (p *RegisterPlace) KeyMap() help.KeyMap { return p.form.Keys() }

// Form exposes the form
func (p *RegisterPlace) Form() *forms.Form { return p.form }

func (p *RegisterPlace) Update(msg tea.Msg) tea.Cmd {
	if p.closed {
		return nil
	}

	switch msg := msg.(type) {
	case placeCreatedMsg:
		if msg.from != p {
			return nil
		}
		p.form.SetBusy(false)
		if msg.err != nil {
			p.deps.Logger.WithError(msg.err).Warn("Failed to register establishment")
			p.form.SetError(submitError(msg.err))
			return nil
		}
		p.deps.Logger.WithField("id", msg.est.ID).Info("Establishment registered")
		p.deps.Bus.Publish(eventbus.EstablishmentCreatedEvent{Establishment: *msg.est})
		return navigation.Redirect(navigation.DetailPath(msg.est.ID))

	case tea.KeyMsg:
		cmd, ev := p.form.Update(msg)
		switch ev {
		case forms.EventSubmit:
			return p.submit()
		case forms.EventCancel:
			return navigation.Back()
		}
		return cmd
	}

	cmd, _ := p.form.Update(msg)
	return cmd
}

func (p *RegisterPlace) submit() tea.Cmd {
	if err := p.form.Validate(); err != nil {
		p.form.SetError(capitalize(err.Error()))
		return nil
	}
	p.form.SetError("")
	p.form.SetBusy(true)

	req := domain.EstablishmentRequest{
		Name:    p.form.Value("name"),
		Address: p.form.Value("address"),
		City:    p.form.Value("city"),
		State:   p.form.Value("state"),
		Type:    p.form.Value("type"),
	}
	photo := p.form.Value("photo")
	client := p.deps.API
	timeout := p.deps.timeout()
	from := p

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		est, err := client.CreateEstablishment(ctx, req, photo)
		return placeCreatedMsg{from: from, est: est, err: err}
	}
}

func (p *RegisterPlace) View() string {
	st := p.deps.Styles
	var b strings.Builder
	b.WriteString(st.Title.Render("Register a place"))
	b.WriteString("\n")
	b.WriteString(st.Dim.Render("Fields marked * are required. The photo is a path to a local image."))
	b.WriteString("\n\n")
	b.WriteString(p.form.View())
	return b.String()
}

// submitError turns a failed write into an inline message
func submitError(err error) string {
	if api.IsUnauthorized(err) {
		return sessionExpired
	}
	return api.UserMessage(err)
}
