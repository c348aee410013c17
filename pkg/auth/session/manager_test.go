package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	users map[string]string
	ttl   time.Duration
	err   error
}

func (m *memoryStore) SaveSession(_ context.Context, id, userID string, ttl time.Duration) error {
	if m.users == nil {
		m.users = map[string]string{}
	}
	m.users[id] = userID
	m.ttl = ttl
	return nil
}

func (m *memoryStore) SessionExists(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *memoryStore) DeleteSession(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func TestRegisterThenRevoke(t *testing.T) {
	store := &memoryStore{}
	m, err := NewManager(store, config.JWTConfig{SessionTTL: time.Hour})
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, m.Register(ctx, "jti-1", userID))
	assert.Equal(t, userID.String(), store.users["jti-1"])
	assert.Equal(t, time.Hour, store.ttl)

	ok, err := m.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Revoke(ctx, "jti-1"))
	ok, err = m.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlankSessionID(t *testing.T) {
	m := &Manager{store: &memoryStore{}, ttl: time.Hour}
	ctx := context.Background()
	assert.Error(t, m.Register(ctx, " ", uuid.New()))
	assert.Error(t, m.Revoke(ctx, ""))
	_, err := m.HasSession(ctx, "")
	assert.Error(t, err)
}

func TestStoreErrorSurfaces(t *testing.T) {
	m := &Manager{store: &memoryStore{err: errors.New("redis down")}, ttl: time.Hour}
	_, err := m.HasSession(context.Background(), "jti")
	assert.Error(t, err)
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager(nil, config.JWTConfig{SessionTTL: time.Hour})
	assert.Error(t, err)
	_, err = NewManager(&memoryStore{}, config.JWTConfig{})
	assert.Error(t, err)
}
