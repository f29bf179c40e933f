package search

import (
	"context"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/ui/services/query"
)

// Options tune the suggestion requests
type Options struct {
	MinQueryLength int
	PageSize       int
	Timeout        time.Duration
}

// Service owns the suggestion list of one widget. Every request is tagged with the
// service's id and a sequence number; only the response to its own latest one is applied.
// All methods are meant to be called from the update loop.
type Service struct {
	searcher Searcher
	bus      eventbus.EventBus
	logger   logrus.FieldLogger
	opts     Options

	id     string // tells this service's results apart from those of earlier widgets
	state  State
	seq    uint64 // latest issued request
	closed bool
}

// NewService creates a suggestion service
func NewService(searcher Searcher, bus eventbus.EventBus, logger logrus.FieldLogger, opts Options) *Service {
	if bus == nil {
		bus = eventbus.NopBus{}
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = 2
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Service{id: uuid.NewString(), searcher: searcher, bus: bus, logger: logger, opts: opts}
}

// Trigger evaluates q. A query shorter than the minimum clears the list and issues nothing;
// otherwise the returned command performs the request.
func (s *Service) Trigger(q query.Query) tea.Cmd {
	if s.closed {
		return nil
	}

	text := q.Trimmed()
	if utf8.RuneCountInString(text) < s.opts.MinQueryLength {
		s.Clear()
		return nil
	}

	s.seq++
	seq := s.seq
	source := s.id
	params := query.SearchParams(q, 0, s.opts.PageSize)
	searcher := s.searcher
	timeout := s.opts.Timeout

	s.logger.WithFields(logrus.Fields{"seq": seq, "query": text}).Debug("Issuing suggestion search")
	s.bus.Publish(eventbus.SearchIssuedEvent{Seq: seq, Query: text})

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := searcher.Search(ctx, params)
		return ResultMsg{Source: source, Seq: seq, Query: q, Page: page, Err: err}
	}
}

// Apply installs the result of a request if it is the latest one.
// It reports whether the message was applied.
func (s *Service) Apply(msg ResultMsg) bool {
	if s.closed || msg.Source != s.id || msg.Seq != s.seq {
		s.logger.WithFields(logrus.Fields{"seq": msg.Seq, "latest": s.seq}).Debug("Discarding stale suggestions")
		return false
	}

	if msg.Err != nil {
		s.logger.WithError(msg.Err).WithField("seq", msg.Seq).Warn("Suggestion search failed")
		s.state = State{}
		s.bus.Publish(eventbus.SearchFailedEvent{Seq: msg.Seq, Err: msg.Err})
		return true
	}

	if msg.Page == nil {
		s.state = State{}
		return true
	}
	s.state = State{
		Items:   msg.Page.Content,
		Total:   msg.Page.TotalElements,
		Visible: len(msg.Page.Content) > 0,
	}
	s.bus.Publish(eventbus.SuggestionsUpdatedEvent{Seq: msg.Seq, Count: len(s.state.Items), Total: s.state.Total})
	return true
}

// Clear empties the list and hides it. Requests still in flight become stale.
func (s *Service) Clear() {
	s.seq++
	s.state = State{}
}

// Hide closes the dropdown and keeps the list
func (s *Service) Hide() {
	s.state.Visible = false
}

// Show reopens the dropdown when there is something to show
func (s *Service) Show() {
	s.state.Visible = len(s.state.Items) > 0
}

// State returns the current list
func (s *Service) State() State {
	return s.state
}

// Visible reports whether the dropdown is open
func (s *Service) Visible() bool {
	return s.state.Visible
}

// ID identifies this service in the results it produces
func (s *Service) ID() string {
	return s.id
}

// Seq returns the sequence number of the latest request
func (s *Service) Seq() uint64 {
	return s.seq
}

// Close discards the list; results arriving later are dropped
func (s *Service) Close() {
	s.closed = true
	s.state = State{}
}
