package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jurdabos/countries-visited/internal/dependencies/clock"
	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session represents an authenticated session. Guest sessions have an
// empty Username.
type Session struct {
	Token     string
	Username  string
	Guest     bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management
type Service struct {
	users storage.UserStore
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth service
func New(users storage.UserStore, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		users:           users,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateGuestSession creates a session with no backing account
func (s *Service) CreateGuestSession() *Session {
	return s.createSession("", true)
}

// Register creates a user account and a session for it
func (s *Service) Register(ctx context.Context, username, password string) (*Session, error) {
	exists, err := s.users.UserExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Created:      s.clock.Now(),
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return s.createSession(username, false), nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, username, s.clock.Now()); err != nil {
		return nil, err
	}

	return s.createSession(username, false), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetUser returns the account for a session token. Guest sessions have
// no account.
func (s *Service) GetUser(ctx context.Context, token string) (*model.User, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	if session.Guest {
		return nil, model.ErrUserNotFound
	}
	return s.users.GetUser(ctx, session.Username)
}

// createSession creates and stores a new session
func (s *Service) createSession(username string, guest bool) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Username:  username,
		Guest:     guest,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
