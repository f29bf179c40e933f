package navigation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"avaliaccess/internal/eventbus"
)

// Parse resolves a path to a route. Unknown paths resolve to home.
func Parse(raw string) Route {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return home()
	}
	path := "/" + strings.Trim(u.Path, "/")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case path == "/":
		return home()
	case path == "/explore":
		r := Route{Name: RouteExplore, Path: path, Query: u.Query()}
		if enc := u.RawQuery; enc != "" {
			r.Path = path + "?" + enc
		}
		return r
	case path == "/login":
		return Route{Name: RouteLogin, Path: path}
	case path == "/register":
		return Route{Name: RouteRegister, Path: path}
	case path == "/register-place":
		return Route{Name: RouteRegisterPlace, Path: path}
	case segments[0] == "establishment" && (len(segments) == 2 || len(segments) == 3):
		id, err := strconv.ParseInt(segments[1], 10, 64)
		if err != nil || id <= 0 {
			return home()
		}
		if len(segments) == 2 {
			return Route{Name: RouteDetail, Path: path, ID: id}
		}
		if segments[2] == "review" {
			return Route{Name: RouteReview, Path: path, ID: id}
		}
	}
	return home()
}

func home() Route {
	return Route{Name: RouteHome, Path: "/"}
}

// Service keeps the current route and the history behind it
type Service struct {
	history []Route
	bus     eventbus.EventBus
	logger  logrus.FieldLogger
}

// NewService starts at home
func NewService(bus eventbus.EventBus, logger logrus.FieldLogger) *Service {
	if bus == nil {
		bus = eventbus.NopBus{}
	}
	return &Service{
		history: []Route{home()},
		bus:     bus,
		logger:  logger,
	}
}

// Current returns the active route
func (s *Service) Current() Route {
	return s.history[len(s.history)-1]
}

// Depth returns the number of routes in the history, including the current one
func (s *Service) Depth() int {
	return len(s.history)
}

// Navigate pushes the route for path and returns it
func (s *Service) Navigate(path string) Route {
	from := s.Current()
	to := Parse(path)
	s.history = append(s.history, to)
	s.announce(from, to)
	return to
}

// Replace swaps the current route for path, leaving history depth unchanged
func (s *Service) Replace(path string) Route {
	from := s.Current()
	to := Parse(path)
	s.history[len(s.history)-1] = to
	s.announce(from, to)
	return to
}

// Back pops the current route. It reports false when already at the first route.
func (s *Service) Back() (Route, bool) {
	if len(s.history) <= 1 {
		return s.Current(), false
	}
	from := s.Current()
	s.history = s.history[:len(s.history)-1]
	to := s.Current()
	s.announce(from, to)
	return to, true
}

// Reset clears the history and goes home
func (s *Service) Reset() Route {
	from := s.Current()
	s.history = []Route{home()}
	s.announce(from, s.Current())
	return s.Current()
}

func (s *Service) announce(from, to Route) {
	s.logger.WithFields(logrus.Fields{"from": from.Path, "to": to.Path}).Debug("Navigated")
	s.bus.Publish(eventbus.NavigatedEvent{From: from.Path, To: to.Path})
}
