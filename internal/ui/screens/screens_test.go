package screens

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avaliaccess/internal/api"
	"avaliaccess/internal/auth"
	"avaliaccess/internal/config"
	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/logging"
	"avaliaccess/internal/ui/services/navigation"
	"avaliaccess/internal/ui/views"
)

var ipiranga = domain.EstablishmentSummary{
	ID: 1, Name: "Museu do Ipiranga", City: "São Paulo", State: "SP", Type: "Museu",
	AverageRating: 4.5, TotalRatings: 2,
}

type fakeAPI struct {
	mu       sync.Mutex
	searches []api.SearchParams
	page     *domain.EstablishmentPage
	err      error

	establishment *domain.EstablishmentSummary
	estErr        error
	reviews       []domain.Review
	features      *domain.AccessibilityFeatures
	featuresErr   error

	created   []domain.EstablishmentRequest
	createErr error
	reviewed  []domain.ReviewRequest
	reviewErr error
}

func (f *fakeAPI) Search(ctx context.Context, params api.SearchParams) (*domain.EstablishmentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, params)
	if f.err != nil {
		return nil, f.err
	}
	if f.page == nil {
		return &domain.EstablishmentPage{Content: []domain.EstablishmentSummary{}}, nil
	}
	return f.page, nil
}

func (f *fakeAPI) GetEstablishment(ctx context.Context, id int64) (*domain.EstablishmentSummary, error) {
	if f.estErr != nil {
		return nil, f.estErr
	}
	return f.establishment, nil
}

func (f *fakeAPI) CreateEstablishment(ctx context.Context, req domain.EstablishmentRequest, photoPath string) (*domain.EstablishmentSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.EstablishmentSummary{ID: 42, Name: req.Name, City: req.City, State: req.State, Type: req.Type}, nil
}

func (f *fakeAPI) ListReviews(ctx context.Context, establishmentID int64) ([]domain.Review, error) {
	return f.reviews, nil
}

func (f *fakeAPI) GetAccessibility(ctx context.Context, establishmentID int64) (*domain.AccessibilityFeatures, error) {
	if f.featuresErr != nil {
		return nil, f.featuresErr
	}
	return f.features, nil
}

func (f *fakeAPI) CreateReview(ctx context.Context, establishmentID int64, req domain.ReviewRequest) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviewed = append(f.reviewed, req)
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	return &domain.Review{ID: 7, EstablishmentID: establishmentID, Rating: req.Rating}, nil
}

func (f *fakeAPI) PhotoURL(path string) string {
	if path == "" {
		return ""
	}
	return "http://api.test" + path
}

func (f *fakeAPI) lastSearch(t *testing.T) api.SearchParams {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.searches)
	return f.searches[len(f.searches)-1]
}

// recordingBus keeps published events in order
type recordingBus struct {
	eventbus.NopBus
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) published() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.DomainEvent(nil), b.events...)
}

type fakeDirectory struct {
	loginErr error
	profile  *domain.UserProfile
}

func (d *fakeDirectory) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	if d.loginErr != nil {
		return nil, d.loginErr
	}
	return &api.AuthResponse{Token: "tok"}, nil
}

func (d *fakeDirectory) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return &api.AuthResponse{Token: "tok"}, nil
}

func (d *fakeDirectory) Me(ctx context.Context) (*domain.UserProfile, error) {
	return d.profile, nil
}

func testDeps(t *testing.T, client *fakeAPI, bus eventbus.EventBus, dir *fakeDirectory) Deps {
	t.Helper()
	if bus == nil {
		bus = eventbus.NopBus{}
	}
	if dir == nil {
		dir = &fakeDirectory{}
	}
	session, err := auth.NewSession(auth.NewMemoryStore(""), bus)
	require.NoError(t, err)
	logger := logging.Discard()
	return Deps{
		API:    client,
		Auth:   auth.NewService(session, dir, logger),
		Config: config.DefaultConfig(),
		Bus:    bus,
		Logger: logger,
		Styles: views.NewStyles(),
	}
}

// exec runs cmd and returns every message it produces, flattening batches.
// Cursor blink commands sleep, so callers never pass form Init commands here.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds every resulting message back into s, returning what s answered with
func deliver(s Screen, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	for _, msg := range exec(cmd) {
		out = append(out, exec(s.Update(msg))...)
	}
	return out
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func exploreRoute(raw string) navigation.Route {
	return navigation.Parse(raw)
}

func TestExplore_SeedsFromRouteAndLoads(t *testing.T) {
	client := &fakeAPI{page: &domain.EstablishmentPage{
		Content:       []domain.EstablishmentSummary{ipiranga},
		TotalElements: 1, TotalPages: 1,
	}}
	e := NewExplore(exploreRoute("/explore?name=museu&type=Museu&minRating=4&state=SP&city=S%C3%A3o+Paulo"), testDeps(t, client, nil, nil))

	q := e.Query()
	assert.Equal(t, "museu", q.Text)
	assert.Equal(t, "Museu", q.Filters.Type)
	assert.Equal(t, 4, q.Filters.MinRating)
	assert.Equal(t, "SP", q.Filters.State)
	assert.Equal(t, "São Paulo", q.Filters.City)

	deliver(e, e.load())
	assert.False(t, e.Loading())
	require.NotNil(t, e.Listing())
	assert.Len(t, e.Listing().Content, 1)

	params := client.lastSearch(t)
	assert.Equal(t, "museu", params.Name)
	assert.Equal(t, "SP", params.State)
	assert.Equal(t, 0, params.Page)
	assert.Equal(t, config.DefaultConfig().Search.ListingPageSize, params.Size)
	assert.Equal(t, "createdAt", params.SortBy)
	assert.Contains(t, e.View(), "1 establishment found")
}

func TestExplore_DropsStaleResults(t *testing.T) {
	client := &fakeAPI{}
	e := NewExplore(exploreRoute("/explore"), testDeps(t, client, nil, nil))

	first := exec(e.load())
	deliver(e, e.load())
	require.NotNil(t, e.Listing())
	settled := e.Listing()

	for _, msg := range first {
		e.Update(msg)
	}
	assert.Same(t, settled, e.Listing())
	assert.False(t, e.Loading())
}

func TestExplore_ErrorMessage(t *testing.T) {
	client := &fakeAPI{err: errors.New("connection refused")}
	e := NewExplore(exploreRoute("/explore"), testDeps(t, client, nil, nil))

	deliver(e, e.load())
	assert.Equal(t, exploreLoadError, e.Err())
	assert.Nil(t, e.Listing())
	assert.Contains(t, e.View(), exploreLoadError)
}

func TestExplore_EmptyListing(t *testing.T) {
	e := NewExplore(exploreRoute("/explore?name=zzz"), testDeps(t, &fakeAPI{}, nil, nil))
	deliver(e, e.load())
	assert.Contains(t, e.View(), "No establishments match these filters.")
}

func TestExplore_StateChangeClearsCity(t *testing.T) {
	e := NewExplore(exploreRoute("/explore?state=SP&city=Campinas"), testDeps(t, &fakeAPI{}, nil, nil))
	e.form.Focus(0)

	// name, type, minRating, state
	for i := 0; i < 3; i++ {
		e.Update(keyMsg(tea.KeyTab))
	}
	e.Update(keyMsg(tea.KeyRight))

	q := e.Query()
	assert.NotEqual(t, "SP", q.Filters.State)
	assert.Empty(t, q.Filters.City)
	assert.Empty(t, e.form.Value("city"))
}

func TestExplore_SubmitSyncsRoute(t *testing.T) {
	client := &fakeAPI{}
	e := NewExplore(exploreRoute("/explore"), testDeps(t, client, nil, nil))
	e.form.Focus(0)
	e.form.SetValue("name", "museu")
	e.form.SetValue("state", "RJ")

	msgs := exec(e.Update(keyMsg(tea.KeyEnter)))
	sync, ok := findMsg[navigation.SyncMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/explore?name=museu&state=RJ", sync.Path)

	params := client.lastSearch(t)
	assert.Equal(t, "museu", params.Name)
	assert.Equal(t, "RJ", params.State)
}

func TestExplore_ResultKeys(t *testing.T) {
	other := ipiranga
	other.ID, other.Name = 2, "Museu Nacional"
	client := &fakeAPI{page: &domain.EstablishmentPage{
		Content:       []domain.EstablishmentSummary{ipiranga, other},
		TotalElements: 30, TotalPages: 2,
	}}
	e := NewExplore(exploreRoute("/explore"), testDeps(t, client, nil, nil))
	deliver(e, e.load())
	e.results = true

	e.Update(runes("j"))
	nav, ok := findMsg[navigation.NavigateMsg](exec(e.Update(keyMsg(tea.KeyEnter))))
	require.True(t, ok)
	assert.Equal(t, "/establishment/2", nav.Path)

	deliver(e, e.Update(runes("n")))
	assert.Equal(t, 1, client.lastSearch(t).Page)

	deliver(e, e.Update(runes("s")))
	params := client.lastSearch(t)
	assert.Equal(t, 0, params.Page)
	assert.Equal(t, "name", params.SortBy)
	assert.Equal(t, "asc", params.SortDirection)

	_, back := findMsg[navigation.BackMsg](exec(e.Update(keyMsg(tea.KeyEsc))))
	assert.True(t, back)
}

func TestExplore_ClearResetsFiltersAndRoute(t *testing.T) {
	client := &fakeAPI{}
	e := NewExplore(exploreRoute("/explore?name=museu&state=SP"), testDeps(t, client, nil, nil))
	e.results = true

	msgs := exec(e.Update(runes("c")))
	assert.True(t, e.Query().Filters.IsZero())
	assert.Empty(t, e.Query().Text)
	assert.Empty(t, e.form.Value("name"))

	sync, ok := findMsg[navigation.SyncMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/explore", sync.Path)
	assert.Empty(t, client.lastSearch(t).Name)
	assert.Empty(t, client.lastSearch(t).State)
}

func TestExplore_IgnoresResultsAfterClose(t *testing.T) {
	e := NewExplore(exploreRoute("/explore"), testDeps(t, &fakeAPI{}, nil, nil))
	pending := exec(e.load())
	e.Close()
	for _, msg := range pending {
		assert.Nil(t, e.Update(msg))
	}
	assert.Nil(t, e.Listing())
}

func TestDetail_LoadsEverything(t *testing.T) {
	client := &fakeAPI{
		establishment: &ipiranga,
		reviews: []domain.Review{
			{ID: 1, UserName: "Ana", Rating: 5, Comment: "Ramp at the side entrance"},
			{ID: 2, UserName: "Bruno", Rating: 4, Comment: "Elevator works"},
		},
		features: &domain.AccessibilityFeatures{HasRamp: true, HasElevator: true},
	}
	d := NewDetail(1, testDeps(t, client, nil, nil))

	deliver(d, d.Init())
	require.NotNil(t, d.Establishment())
	assert.Empty(t, d.Err())
	assert.Equal(t, "Museu do Ipiranga", d.Title())

	view := d.View()
	assert.Contains(t, view, "Museu do Ipiranga")
	assert.Contains(t, view, "Access ramp")
	assert.Contains(t, view, "Ramp at the side entrance")

	pager, ok := findMsg[ShowPagerMsg](exec(d.Update(runes("p"))))
	require.True(t, ok)
	assert.Contains(t, pager.Content, "Elevator works")
	assert.NotContains(t, pager.Content, "\x1b[")

	nav, ok := findMsg[navigation.NavigateMsg](exec(d.Update(runes("w"))))
	require.True(t, ok)
	assert.Equal(t, "/establishment/1/review", nav.Path)
}

func TestDetail_MissingAccessibilitySummary(t *testing.T) {
	client := &fakeAPI{
		establishment: &ipiranga,
		featuresErr:   &api.APIError{StatusCode: http.StatusNotFound, Message: "No reviews"},
	}
	d := NewDetail(1, testDeps(t, client, nil, nil))

	deliver(d, d.Init())
	assert.Empty(t, d.Err())
	require.NotNil(t, d.Establishment())
}

func TestDetail_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &api.APIError{StatusCode: http.StatusNotFound, Message: "Establishment not found"}, "Establishment not found."},
		{"server error", &api.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}, "Could not load establishment. Try again."},
		{"transport", errors.New("dial tcp: refused"), "Could not load establishment. Try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetail(9, testDeps(t, &fakeAPI{estErr: tt.err}, nil, nil))
			deliver(d, d.Init())
			assert.Equal(t, tt.want, d.Err())
			assert.Nil(t, d.Establishment())
		})
	}
}

func TestLogin_Success(t *testing.T) {
	dir := &fakeDirectory{profile: &domain.UserProfile{ID: 1, Name: "Ana", Email: "ana@example.com"}}
	l := NewLogin(testDeps(t, &fakeAPI{}, nil, dir))
	l.Form().SetValue("email", "ana@example.com")
	l.Form().SetValue("password", "secret1")

	msgs := deliver(l, l.Update(keyMsg(tea.KeyEnter)))
	authMsg, ok := findMsg[AuthenticatedMsg](msgs)
	require.True(t, ok)
	require.NotNil(t, authMsg.User)
	assert.Equal(t, "Ana", authMsg.User.Name)
	assert.True(t, l.deps.Auth.Session().LoggedIn())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials", &api.APIError{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}, "Invalid email or password."},
		{"server message", &api.APIError{StatusCode: http.StatusBadRequest, Message: "Email is invalid"}, "Email is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLogin(testDeps(t, &fakeAPI{}, nil, &fakeDirectory{loginErr: tt.err}))
			l.Form().SetValue("email", "ana@example.com")
			l.Form().SetValue("password", "wrong")

			msgs := deliver(l, l.Update(keyMsg(tea.KeyEnter)))
			_, ok := findMsg[AuthenticatedMsg](msgs)
			assert.False(t, ok)
			assert.Contains(t, l.Form().Error(), tt.want)
			assert.False(t, l.Form().Busy())
		})
	}
}

func TestLogin_SwitchToRegister(t *testing.T) {
	l := NewLogin(testDeps(t, &fakeAPI{}, nil, nil))
	nav, ok := findMsg[navigation.NavigateMsg](exec(l.Update(tea.KeyMsg{Type: tea.KeyCtrlR})))
	require.True(t, ok)
	assert.Equal(t, "/register", nav.Path)
	assert.True(t, nav.Replace)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name, password, confirm, want string
	}{
		{"short password", "abc", "abc", "Password must have at least 6 characters."},
		{"mismatch", "secret1", "secret2", "Passwords do not match."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegister(testDeps(t, &fakeAPI{}, nil, nil))
			r.Form().SetValue("name", "Ana")
			r.Form().SetValue("email", "ana@example.com")
			r.Form().SetValue("password", tt.password)
			r.Form().SetValue("confirm", tt.confirm)

			assert.Nil(t, r.Update(keyMsg(tea.KeyEnter)))
			assert.Equal(t, tt.want, r.Form().Error())
			assert.False(t, r.Form().Busy())
		})
	}
}

func TestRegisterPlace_Submit(t *testing.T) {
	client := &fakeAPI{}
	bus := &recordingBus{}
	p := NewRegisterPlace(testDeps(t, client, bus, nil))
	p.Form().SetValue("name", "Teatro Municipal")
	p.Form().SetValue("city", "São Paulo")
	p.Form().SetValue("state", "SP")
	p.Form().SetValue("type", "Teatro")

	msgs := deliver(p, p.Update(keyMsg(tea.KeyEnter)))
	nav, ok := findMsg[navigation.NavigateMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/establishment/42", nav.Path)
	assert.True(t, nav.Replace)

	require.Len(t, client.created, 1)
	assert.Equal(t, "Teatro", client.created[0].Type)

	events := bus.published()
	require.Len(t, events, 1)
	assert.Equal(t, eventbus.EventEstablishmentCreated, events[0].Type())
}

func TestRegisterPlace_Errors(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		client := &fakeAPI{}
		p := NewRegisterPlace(testDeps(t, client, nil, nil))
		p.Form().SetValue("name", "Teatro Municipal")

		assert.Nil(t, p.Update(keyMsg(tea.KeyEnter)))
		assert.NotEmpty(t, p.Form().Error())
		assert.Empty(t, client.created)
	})

	t.Run("expired session", func(t *testing.T) {
		client := &fakeAPI{createErr: &api.APIError{StatusCode: http.StatusUnauthorized, Message: "expired"}}
		p := NewRegisterPlace(testDeps(t, client, nil, nil))
		p.Form().SetValue("name", "Teatro Municipal")
		p.Form().SetValue("city", "São Paulo")
		p.Form().SetValue("state", "SP")
		p.Form().SetValue("type", "Teatro")

		msgs := deliver(p, p.Update(keyMsg(tea.KeyEnter)))
		_, ok := findMsg[navigation.NavigateMsg](msgs)
		assert.False(t, ok)
		assert.Equal(t, sessionExpired, p.Form().Error())
	})
}

func TestReview_RequestAndSubmit(t *testing.T) {
	client := &fakeAPI{establishment: &ipiranga}
	bus := &recordingBus{}
	r := NewReview(1, testDeps(t, client, bus, nil))
	r.Form().SetValue("rating", "4")
	r.Form().SetValue("comment", "Wide doors")
	r.Form().SetValue("hasRamp", "true")
	r.Form().SetValue("hasTactileFloor", "true")

	req := r.Request()
	assert.Equal(t, 4, req.Rating)
	assert.Equal(t, "Wide doors", req.Comment)
	assert.True(t, req.HasRamp)
	assert.True(t, req.HasTactileFloor)
	assert.False(t, req.HasElevator)

	msgs := deliver(r, r.Update(keyMsg(tea.KeyEnter)))
	nav, ok := findMsg[navigation.NavigateMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/establishment/1", nav.Path)
	assert.True(t, nav.Replace)

	require.Len(t, client.reviewed, 1)
	events := bus.published()
	require.Len(t, events, 1)
	submitted, ok := events[0].(eventbus.ReviewSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(7), submitted.ReviewID)
}

func TestReview_RequiresRating(t *testing.T) {
	client := &fakeAPI{}
	r := NewReview(1, testDeps(t, client, nil, nil))

	assert.Nil(t, r.Update(keyMsg(tea.KeyEnter)))
	assert.NotEmpty(t, r.Form().Error())
	assert.Empty(t, client.reviewed)
}

func TestNew_PicksScreenForRoute(t *testing.T) {
	deps := testDeps(t, &fakeAPI{}, nil, nil)
	tests := []struct {
		path string
		want Screen
	}{
		{"/", &Home{}},
		{"/explore?name=x", &Explore{}},
		{"/establishment/3", &Detail{}},
		{"/establishment/3/review", &Review{}},
		{"/login", &Login{}},
		{"/register", &Register{}},
		{"/register-place", &RegisterPlace{}},
		{"/nowhere", &Home{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.IsType(t, tt.want, New(navigation.Parse(tt.path), deps))
		})
	}
}

func TestExplore_IgnoresResultsOfPreviousScreen(t *testing.T) {
	old := NewExplore(exploreRoute("/explore?name=centro"), testDeps(t, &fakeAPI{page: &domain.EstablishmentPage{
		Content: []domain.EstablishmentSummary{{ID: 2, Name: "Centro Cultural"}}, TotalElements: 1, TotalPages: 1,
	}}, nil, nil))
	pending := exec(old.load())
	old.Close()

	e := NewExplore(exploreRoute("/explore?name=museu"), testDeps(t, &fakeAPI{page: &domain.EstablishmentPage{
		Content: []domain.EstablishmentSummary{ipiranga}, TotalElements: 1, TotalPages: 1,
	}}, nil, nil))
	deliver(e, e.load())
	settled := e.Listing()
	require.NotNil(t, settled)

	for _, msg := range pending {
		assert.Nil(t, e.Update(msg))
	}
	assert.Same(t, settled, e.Listing())
	assert.NotContains(t, e.View(), "Centro Cultural")
}

func TestDetail_IgnoresResultsOfPreviousScreen(t *testing.T) {
	other := domain.EstablishmentSummary{ID: 1, Name: "Teatro Municipal"}
	old := NewDetail(1, testDeps(t, &fakeAPI{establishment: &other}, nil, nil))
	pending := exec(old.Init())
	old.Close()

	d := NewDetail(1, testDeps(t, &fakeAPI{establishment: &ipiranga}, nil, nil))
	deliver(d, d.Init())
	require.NotNil(t, d.Establishment())

	for _, msg := range pending {
		d.Update(msg)
	}
	assert.Equal(t, "Museu do Ipiranga", d.Establishment().Name)
	assert.False(t, d.loading)
}

func TestHome_LoadsTopRated(t *testing.T) {
	client := &fakeAPI{page: &domain.EstablishmentPage{
		Content: []domain.EstablishmentSummary{ipiranga}, TotalElements: 1, TotalPages: 1,
	}}
	h := NewHome(testDeps(t, client, nil, nil))
	h.SetFrame(0, 0, 100, 30)
	assert.NotContains(t, h.View(), "Top rated")

	deliver(h, h.loadFeatured())
	require.Len(t, h.Featured(), 1)

	params := client.lastSearch(t)
	assert.Empty(t, params.Name)
	assert.Equal(t, featuredCount, params.Size)
	assert.Equal(t, "averageRating", params.SortBy)
	assert.Equal(t, "desc", params.SortDirection)

	view := views.StripANSI(h.View())
	assert.Contains(t, view, "Top rated")
	assert.Contains(t, view, "Museu do Ipiranga")
}

func TestHome_TopRatedFailureKeepsSearch(t *testing.T) {
	h := NewHome(testDeps(t, &fakeAPI{err: errors.New("connection refused")}, nil, nil))
	deliver(h, h.loadFeatured())
	assert.Empty(t, h.Featured())
	assert.NotContains(t, h.View(), "Top rated")
	assert.Contains(t, views.StripANSI(h.View()), "Search:")
}

func TestHome_IgnoresTopRatedOfPreviousScreen(t *testing.T) {
	client := &fakeAPI{page: &domain.EstablishmentPage{
		Content: []domain.EstablishmentSummary{ipiranga}, TotalElements: 1, TotalPages: 1,
	}}
	old := NewHome(testDeps(t, client, nil, nil))
	pending := exec(old.loadFeatured())
	old.Close()

	h := NewHome(testDeps(t, client, nil, nil))
	for _, msg := range pending {
		assert.Nil(t, h.Update(msg))
	}
	assert.Empty(t, h.Featured())
}

func TestHome_SearchOriginFollowsWrappedIntro(t *testing.T) {
	h := NewHome(testDeps(t, &fakeAPI{}, nil, nil))
	h.SetFrame(2, 3, 30, 20)

	introLines := lipgloss.Height(h.intro())
	require.Greater(t, introLines, 2, "the tagline wraps at this width")
	y := h.search.Bounds().Y
	assert.Equal(t, 3+introLines+1, y)

	lines := strings.Split(views.StripANSI(h.View()), "\n")
	require.Greater(t, len(lines), y-3)
	assert.True(t, strings.HasPrefix(lines[y-3], "Search:"), "input line is drawn at the hit-test origin")
}
