package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"avaliaccess/internal/api"
	"avaliaccess/internal/domain"
)

// Directory is the subset of the API client the auth flows need
type Directory interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*domain.UserProfile, error)
}

// Service runs the login, register and restore flows against a Session
type Service struct {
	session *Session
	dir     Directory
	logger  logrus.FieldLogger
}

// NewService creates an auth service
func NewService(session *Session, dir Directory, logger logrus.FieldLogger) *Service {
	return &Service{session: session, dir: dir, logger: logger}
}

// Session returns the underlying session
func (s *Service) Session() *Session {
	return s.session
}

// Login authenticates and loads the user's profile
func (s *Service) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", api.ErrInvalidParams)
	}
	resp, err := s.dir.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp.Token)
}

// Register creates an account, then behaves like Login
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.UserProfile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", api.ErrInvalidParams)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must have at least 6 characters", api.ErrInvalidParams)
	}
	resp, err := s.dir.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp.Token)
}

// Restore validates a persisted token at startup. An unusable token is cleared.
func (s *Service) Restore(ctx context.Context) (*domain.UserProfile, error) {
	if !s.session.LoggedIn() {
		return nil, nil
	}
	profile, err := s.dir.Me(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Stored token rejected, clearing session")
		if clearErr := s.session.Clear(); clearErr != nil {
			s.logger.WithError(clearErr).Error("Failed to clear session")
		}
		return nil, err
	}
	s.session.SetUser(profile)
	return profile, nil
}

// Logout forgets the token
func (s *Service) Logout() error {
	return s.session.Clear()
}

func (s *Service) adopt(ctx context.Context, token string) (*domain.UserProfile, error) {
	if err := s.session.SetToken(token); err != nil {
		return nil, err
	}
	profile, err := s.dir.Me(ctx)
	if err != nil {
		// the token stays; the profile can be fetched later
		s.logger.WithError(err).Warn("Logged in but could not load profile")
		return nil, nil
	}
	s.session.SetUser(profile)
	s.logger.WithField("user", profile.Email).Info("Logged in")
	return profile, nil
}
