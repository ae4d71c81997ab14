package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "pulseralux/internal/errors"
	"pulseralux/internal/metrics"
	"pulseralux/internal/model"
	"pulseralux/internal/repository"
	"pulseralux/internal/session"
)

const minPasswordLength = 6

// Session is the authenticated state handed back to the client: the opaque
// token plus the cached profile.
type Session struct {
	Authenticated bool          `json:"authenticated"`
	Token         string        `json:"token,omitempty"`
	Profile       model.Profile `json:"profile"`
}

// AuthService handles registration, login, logout and session restore.
type AuthService interface {
	Register(ctx context.Context, name, email, password, confirmPassword string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Restore(ctx context.Context, token string) *Session
}

type authService struct {
	users    repository.UserRepository
	tokens   *session.TokenService
	sessions *session.Store
	metrics  *metrics.Collector
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *session.TokenService, sessions *session.Store, collector *metrics.Collector) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		metrics:  collector,
	}
}

// Register creates a new account and logs it in. The password is stored
// exactly as supplied; see model.User.
func (s *authService) Register(ctx context.Context, name, email, password, confirmPassword string) (*Session, error) {
	if password != confirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	sess, err := s.issue(ctx, user.Profile())
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRegistration()
	return sess, nil
}

// Login authenticates an account and issues a fresh session.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	// Plain comparison, matching the stored form.
	if user.Password != password {
		return nil, apperrors.ErrWrongPassword
	}

	sess, err := s.issue(ctx, user.Profile())
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLogin()
	return sess, nil
}

// Logout deletes the persisted session for the token.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Restore rehydrates a session from its persisted profile. Any storage
// failure or absence fails open to a logged-out session; the profile is
// trusted as cached and never re-checked against the user store.
func (s *authService) Restore(ctx context.Context, token string) *Session {
	profile, ok, err := s.sessions.Load(ctx, token)
	if err != nil || !ok {
		return &Session{Authenticated: false}
	}
	return &Session{Authenticated: true, Token: token, Profile: profile}
}

// issue mints a token and persists the token-to-profile pair.
func (s *authService) issue(ctx context.Context, profile model.Profile) (*Session, error) {
	token, err := s.tokens.Mint(profile)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}
	if err := s.sessions.Save(ctx, token, profile); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &Session{Authenticated: true, Token: token, Profile: profile}, nil
}
