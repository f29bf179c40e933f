package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/ui/forms"
	"avaliaccess/internal/ui/services/navigation"
)

type reviewTargetMsg struct {
	from *Review
	est  *domain.EstablishmentSummary
	err  error
}

type reviewSubmittedMsg struct {
	from   *Review
	review *domain.Review
	err    error
}

// Review is the form for rating an establishment
type Review struct {
	frame
	deps   Deps
	id     int64
	form   *forms.Form
	name   string
	closed bool
}

// NewReview creates the review form for establishment id
func NewReview(id int64, deps Deps) *Review {
	fields := []*forms.Field{
		forms.Select("rating", "Rating", forms.Options("1", "2", "3", "4", "5"), true),
		forms.Text("comment", "Comment", false),
	}
	for _, f := range domain.Features {
		fields = append(fields, forms.Toggle(f.Key, f.Label))
	}
	return &Review{deps: deps, id: id, form: forms.New(deps.Styles, fields...)}
}

func (r *Review) Init() tea.Cmd {
	client := r.deps.API
	id := r.id
	timeout := r.deps.timeout()
	from := r
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		est, err := client.GetEstablishment(ctx, id)
		return reviewTargetMsg{from: from, est: est, err: err}
	}
	return tea.Batch(r.form.Init(), fetch)
}

func (r *Review) Close() {
	r.closed = true
	r.form.Blur()
}

func (r *Review) Title() string { return "Write review" }

func (r *Review) Typing() bool { return r.form.Typing() }

func (r *Review) KeyMap() help.KeyMap { return r.form.Keys() }

// Form exposes the form
func (r *Review) Form() *forms.Form { return r.form }

// Request builds the review payload from the form
func (r *Review) Request() domain.ReviewRequest {
	rating, _ := strconv.Atoi(r.form.Value("rating"))
	req := domain.ReviewRequest{Rating: rating, Comment: r.form.Value("comment")}
	for _, f := range domain.Features {
		f.Set(&req.AccessibilityFeatures, r.form.Checked(f.Key))
	}
	return req
}

func (r *Review) Update(msg tea.Msg) tea.Cmd {
	if r.closed {
		return nil
	}

	switch msg := msg.(type) {
	case reviewTargetMsg:
		if msg.from != r {
			return nil
		}
		if msg.err != nil {
			// the form still works without the name
			r.deps.Logger.WithError(msg.err).Debug("Could not load review target")
			return nil
		}
		r.name = msg.est.Name
		return nil

	case reviewSubmittedMsg:
		if msg.from != r {
			return nil
		}
		r.form.SetBusy(false)
		if msg.err != nil {
			r.deps.Logger.WithError(msg.err).Warn("Failed to submit review")
			r.form.SetError(submitError(msg.err))
			return nil
		}
		r.deps.Bus.Publish(eventbus.ReviewSubmittedEvent{EstablishmentID: r.id, ReviewID: msg.review.ID})
		return navigation.Redirect(navigation.DetailPath(r.id))

	case tea.KeyMsg:
		cmd, ev := r.form.Update(msg)
		switch ev {
		case forms.EventSubmit:
			return r.submit()
		case forms.EventCancel:
			return navigation.Back()
		}
		return cmd
	}

	cmd, _ := r.form.Update(msg)
	return cmd
}

func (r *Review) submit() tea.Cmd {
	if err := r.form.Validate(); err != nil {
		r.form.SetError(capitalize(err.Error()))
		return nil
	}
	r.form.SetError("")
	r.form.SetBusy(true)

	req := r.Request()
	client := r.deps.API
	id := r.id
	timeout := r.deps.timeout()
	from := r
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		review, err := client.CreateReview(ctx, id, req)
		return reviewSubmittedMsg{from: from, review: review, err: err}
	}
}

func (r *Review) View() string {
	st := r.deps.Styles
	var b strings.Builder
	title := fmt.Sprintf("Review establishment #%d", r.id)
	if r.name != "" {
		title = "Review " + r.name
	}
	b.WriteString(st.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(st.Dim.Render("Mark the features you found. Space toggles, ←/→ picks the rating."))
	b.WriteString("\n\n")
	b.WriteString(r.form.View())
	return b.String()
}
