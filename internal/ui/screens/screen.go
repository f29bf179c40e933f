package screens

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"avaliaccess/internal/auth"
	"avaliaccess/internal/config"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/services/search"
	"avaliaccess/internal/ui/views"
)

// Screen is one routed page of the application
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	// Close releases timers and drops late results
	Close()
	// SetFrame tells the screen where it is drawn
	SetFrame(x, y, width, height int)
	Title() string
	// Typing reports whether printable keys belong to a text field
	Typing() bool
	KeyMap() help.KeyMap
}

// API is the directory service as used by the screens
type API interface {
	search.Searcher
	GetEstablishment(ctx context.Context, id int64) (*domain.EstablishmentSummary, error)
	CreateEstablishment(ctx context.Context, req domain.EstablishmentRequest, photoPath string) (*domain.EstablishmentSummary, error)
	ListReviews(ctx context.Context, establishmentID int64) ([]domain.Review, error)
	GetAccessibility(ctx context.Context, establishmentID int64) (*domain.AccessibilityFeatures, error)
	CreateReview(ctx context.Context, establishmentID int64, req domain.ReviewRequest) (*domain.Review, error)
	PhotoURL(path string) string
}

// Deps are the collaborators shared by every screen
type Deps struct {
	API    API
	Auth   *auth.Service
	Config *config.Config
	Bus    eventbus.EventBus
	Logger logrus.FieldLogger
	Styles *views.Styles
}

func (d Deps) timeout() time.Duration {
	if d.Config == nil || d.Config.Search.RequestTimeout() <= 0 {
		return 10 * time.Second
	}
	return d.Config.Search.RequestTimeout()
}

// ShowPagerMsg asks the root model to show Content in the pager
type ShowPagerMsg struct {
	Content string
}

// AuthenticatedMsg reports a successful login or registration
type AuthenticatedMsg struct {
	User *domain.UserProfile
}

// New builds the screen for route
func New(route navigation.Route, deps Deps) Screen {
	switch route.Name {
	case navigation.RouteExplore:
		return NewExplore(route, deps)
	case navigation.RouteDetail:
		return NewDetail(route.ID, deps)
	case navigation.RouteReview:
		return NewReview(route.ID, deps)
	case navigation.RouteLogin:
		return NewLogin(deps)
	case navigation.RouteRegister:
		return NewRegister(deps)
	case navigation.RouteRegisterPlace:
		return NewRegisterPlace(deps)
	default:
		return NewHome(deps)
	}
}

// keyMap is a static help.KeyMap
type keyMap []key.Binding

func (k keyMap) ShortHelp() []key.Binding  { return k }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

var (
	backKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
)

// frame is the region a screen occupies
type frame struct {
	x, y, width, height int
}

func (f *frame) SetFrame(x, y, width, height int) {
	f.x, f.y, f.width, f.height = x, y, width, height
}
