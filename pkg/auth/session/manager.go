package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/google/uuid"
)

var errMissingID = errors.New("session id is required")

// Store persists session ids with an expiry. *redis.Client satisfies it.
type Store interface {
	SaveSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	SessionExists(ctx context.Context, sessionID string) (bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AccessSessionChecker is what request authentication needs.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// Manager tracks issued token ids so logout can revoke a token before it
// expires.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, cfg config.JWTConfig) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Manager{store: store, ttl: cfg.SessionTTL}, nil
}

func (m *Manager) Register(ctx context.Context, sessionID string, userID uuid.UUID) error {
	if strings.TrimSpace(sessionID) == "" {
		return errMissingID
	}
	return m.store.SaveSession(ctx, sessionID, userID.String(), m.ttl)
}

func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errMissingID
	}
	return m.store.DeleteSession(ctx, sessionID)
}

func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, errMissingID
	}
	return m.store.SessionExists(ctx, sessionID)
}
