package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"satta-board/internal/models"
	"satta-board/internal/store"
	"satta-board/internal/types"

	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// Session is the explicit login state attached to a bearer token. It is the
// single source of auth truth passed through request context; handlers never
// consult global state.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionManager creates and resolves sessions in the store.
type SessionManager struct {
	store store.Store
	ttl   time.Duration
}

// NewSessionManager creates a SessionManager with the configured TTL.
func NewSessionManager(s store.Store, configManager types.ConfigManager) *SessionManager {
	ttl := time.Duration(configManager.GetAuthConfig().SessionTTLMinutes) * time.Minute
	return &SessionManager{store: s, ttl: ttl}
}

// Create issues a new session token for the given profile.
func (m *SessionManager) Create(profile *models.Profile) (*Session, error) {
	now := time.Now()
	session := &Session{
		Token:     uuid.NewString(),
		UserID:    profile.UserID,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.store.Set(sessionKeyPrefix+session.Token, payload, m.ttl); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// Resolve loads the session behind a token. Any store failure resolves to an
// error, never to a guessed session.
func (m *SessionManager) Resolve(token string) (*Session, error) {
	if token == "" {
		return nil, store.ErrNotFound
	}
	payload, err := m.store.Get(sessionKeyPrefix + token)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		_ = m.store.Delete(sessionKeyPrefix + token)
		return nil, store.ErrNotFound
	}
	return &session, nil
}

// Destroy removes a session token (logout).
func (m *SessionManager) Destroy(token string) error {
	return m.store.Delete(sessionKeyPrefix + token)
}
