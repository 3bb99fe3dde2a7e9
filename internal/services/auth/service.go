// Package auth authenticates game clients and manages their sessions.
// Sessions are in-memory; a restart just forces clients to log in again.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zkgames/zkgames-go/internal/dependencies/clock"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session represents an authenticated game client session
type Session struct {
	Token     string
	ClientID  model.ClientID
	Client    model.GameClient
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// AdminToken guards manager init and account funding. Empty disables
	// the admin surface entirely.
	AdminToken string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service handles game client authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
	adminToken      string
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
		adminToken:      cfg.AdminToken,
	}
}

// Login authenticates a game client by its signer key and creates a session
func (s *Service) Login(ctx context.Context, clientID model.ClientID, signerKey string) (*Session, error) {
	client, err := s.storage.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, model.ErrClientNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(client.SignerHash, []byte(signerKey)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		ClientID:  client.ID,
		Client:    *client,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
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

// ValidateAdminToken checks the platform administrator token
func (s *Service) ValidateAdminToken(token string) bool {
	if s.adminToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.adminToken), []byte(token)) == 1
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

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
