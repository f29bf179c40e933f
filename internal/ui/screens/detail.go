package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"avaliaccess/internal/api"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/views"
)

const latestReviews = 3

type detailMsg struct {
	from     *Detail
	seq      uint64
	est      *domain.EstablishmentSummary
	reviews  []domain.Review
	features *domain.AccessibilityFeatures
	err      error
}

type detailKeys struct {
	Review  key.Binding
	Reviews key.Binding
	Reload  key.Binding
	Back    key.Binding
}

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Review, k.Reviews, k.Reload, k.Back}
}

func (k detailKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// Detail shows one establishment with its accessibility summary and reviews
type Detail struct {
	frame
	deps    Deps
	id      int64
	keys    detailKeys
	spinner spinner.Model
	cards   *views.CardRenderer

	seq      uint64
	loading  bool
	err      string
	est      *domain.EstablishmentSummary
	reviews  []domain.Review
	features *domain.AccessibilityFeatures
	closed   bool
}

// NewDetail creates the detail screen for establishment id
func NewDetail(id int64, deps Deps) *Detail {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Detail{
		deps:    deps,
		id:      id,
		spinner: sp,
		cards:   views.NewCardRenderer(deps.Styles),
		keys: detailKeys{
			Review:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write review")),
			Reviews: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "all reviews")),
			Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
			Back:    backKey,
		},
	}
}

func (d *Detail) Init() tea.Cmd { return d.load() }

func (d *Detail) Close() { d.closed = true }

func (d *Detail) Title() string {
	if d.est != nil {
		return d.est.Name
	}
	return "Establishment"
}

func (d *Detail) Typing() bool { return false }

func (d *Detail) KeyMap() help.KeyMap { return d.keys }

// Establishment returns the loaded establishment, nil until loaded
func (d *Detail) Establishment() *domain.EstablishmentSummary { return d.est }

// Err returns the inline error
func (d *Detail) Err() string { return d.err }

// load fetches the establishment, its reviews and its accessibility summary together
func (d *Detail) load() tea.Cmd {
	d.seq++
	seq := d.seq
	d.loading = true
	d.err = ""

	client := d.deps.API
	id := d.id
	timeout := d.deps.timeout()
	from := d

	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		msg := detailMsg{from: from, seq: seq}
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			est, err := client.GetEstablishment(ctx, id)
			msg.est = est
			return err
		})
		g.Go(func() error {
			reviews, err := client.ListReviews(ctx, id)
			msg.reviews = reviews
			return err
		})
		g.Go(func() error {
			features, err := client.GetAccessibility(ctx, id)
			if api.IsNotFound(err) {
				// no reviews yet
				return nil
			}
			msg.features = features
			return err
		})
		msg.err = g.Wait()
		return msg
	}
	return tea.Batch(fetch, d.spinner.Tick)
}

func (d *Detail) Update(msg tea.Msg) tea.Cmd {
	if d.closed {
		return nil
	}

	switch msg := msg.(type) {
	case detailMsg:
		if msg.from != d || msg.seq != d.seq {
			return nil
		}
		d.loading = false
		if msg.err != nil {
			d.deps.Logger.WithError(msg.err).WithField("id", d.id).Warn("Failed to load establishment")
			if api.IsNotFound(msg.err) {
				d.err = "Establishment not found."
			} else {
				d.err = "Could not load establishment. Try again."
			}
			return nil
		}
		d.est, d.reviews, d.features = msg.est, msg.reviews, msg.features
		return nil

	case spinner.TickMsg:
		if !d.loading {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Back):
			return navigation.Back()
		case key.Matches(msg, d.keys.Review):
			return navigation.Navigate(navigation.ReviewPath(d.id))
		case key.Matches(msg, d.keys.Reload):
			return d.load()
		case key.Matches(msg, d.keys.Reviews):
			if d.est == nil {
				return nil
			}
			content := d.reviewsDocument()
			return func() tea.Msg { return ShowPagerMsg{Content: content} }
		}
	}
	return nil
}

// reviewsDocument renders every review as plain text for the pager
func (d *Detail) reviewsDocument() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", d.est.Name, views.Location(*d.est))
	if len(d.reviews) == 0 {
		b.WriteString("No reviews yet.\n")
		return b.String()
	}
	for _, rv := range d.reviews {
		b.WriteString(views.StripANSI(d.cards.Review(rv)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (d *Detail) View() string {
	st := d.deps.Styles
	if d.loading {
		return st.StatusLoading.Render(d.spinner.View() + " Loading establishment...")
	}
	if d.err != "" {
		return st.StatusError.Render(d.err) + st.Dim.Render("  (r to retry, esc to go back)")
	}
	if d.est == nil {
		return ""
	}

	e := d.est
	var b strings.Builder
	b.WriteString(st.Title.Render(e.Name))
	b.WriteString("\n")
	b.WriteString(st.Subtitle.Render(e.Type + " · " + views.Location(*e)))
	b.WriteString("\n")
	if e.Address != "" {
		b.WriteString(st.Value.Render(e.Address))
		b.WriteString("\n")
	}
	b.WriteString(st.Rating.Render(views.Stars(e.AverageRating, e.TotalRatings)))
	b.WriteString("\n")
	if e.PhotoPath != "" {
		b.WriteString(st.Dim.Render("Photo: " + d.deps.API.PhotoURL(e.PhotoPath)))
		b.WriteString("\n")
	}
	if e.CreatedByName != "" {
		b.WriteString(st.Dim.Render("Added by " + e.CreatedByName))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Label.Render("Accessibility"))
	b.WriteString("\n")
	if d.features != nil {
		b.WriteString(d.cards.Features(*d.features))
	} else {
		b.WriteString(st.Dim.Render("No accessibility reports yet."))
	}
	b.WriteString("\n\n")

	b.WriteString(st.Label.Render(fmt.Sprintf("Reviews (%d)", len(d.reviews))))
	b.WriteString("\n")
	if len(d.reviews) == 0 {
		b.WriteString(st.Dim.Render("No reviews yet. Press w to write the first one."))
		return b.String()
	}
	shown := d.reviews
	if len(shown) > latestReviews {
		shown = shown[:latestReviews]
	}
	for _, rv := range shown {
		b.WriteString(d.cards.Review(rv))
		b.WriteString("\n")
	}
	if len(d.reviews) > latestReviews {
		b.WriteString(st.Dim.Render(fmt.Sprintf("Press p to read all %d reviews.", len(d.reviews))))
	}
	return strings.TrimRight(b.String(), "\n")
}
