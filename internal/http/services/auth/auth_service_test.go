package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/auth/gate"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	jwtx "github.com/aditya1111/learnhub/internal/jwt"
	"github.com/aditya1111/learnhub/internal/sessionstore"
)

// memStore es un sessionstore.Store en memoria para tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, sessionstore.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Close() error { return nil }

// memProfiles implementa lo mínimo de ProfileRepository que usa el gate.
type memProfiles struct {
	byID map[string]*repository.Profile
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*repository.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Create(_ context.Context, in repository.CreateProfileInput) (*repository.Profile, error) {
	if _, ok := m.byID[in.ID]; ok {
		return nil, repository.ErrConflict
	}
	p := &repository.Profile{ID: in.ID, FullName: in.FullName, AvatarURL: in.AvatarURL, CreatedAt: time.Now()}
	m.byID[in.ID] = p
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Update(_ context.Context, id string, _ repository.UpdateProfileInput) (*repository.Profile, error) {
	return m.GetByID(nil, id)
}

func (m *memProfiles) SetAllowed(_ context.Context, id string, allowed bool) (*repository.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.IsAllowed = allowed
	cp := *p
	return &cp, nil
}

func (m *memProfiles) ListByAllowed(_ context.Context, _ bool) ([]repository.Profile, error) {
	return nil, nil
}

func newTestAuth(t *testing.T) (Service, *memStore, *memProfiles) {
	t.Helper()
	sessions := newMemStore()
	profiles := &memProfiles{byID: map[string]*repository.Profile{
		"u1": {ID: "u1", FullName: "Ada", IsAllowed: true},
	}}
	s := NewService(Deps{
		Google:     nil,
		Issuer:     jwtx.NewIssuer("learnhub-test", "test-secret", time.Minute),
		Gate:       gate.New(profiles),
		Sessions:   sessions,
		RefreshTTL: time.Hour,
	})
	return s, sessions, profiles
}

// seedSession planta una refresh session como lo haría un sign-in previo.
func seedSession(t *testing.T, sessions *memStore, token, userID string) {
	t.Helper()
	err := sessions.Set(context.Background(), sessionKeyPrefix+token,
		[]byte(`{"user_id":"`+userID+`","email":"ada@example.com","full_name":"Ada"}`), time.Hour)
	require.NoError(t, err)
}

func TestRefreshRotatesSession(t *testing.T) {
	s, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	seedSession(t, sessions, "old-token", "u1")

	resp, err := s.Refresh(ctx, "old-token")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, "old-token", resp.RefreshToken)
	assert.Equal(t, string(gate.Approved), resp.Status)

	// El token viejo quedó quemado.
	_, err = s.Refresh(ctx, "old-token")
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	// El nuevo sigue vivo.
	_, err = s.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsUnknownAndCorrupt(t *testing.T) {
	s, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := s.Refresh(ctx, "never-issued")
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	_, err = s.Refresh(ctx, "   ")
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	// Un payload corrupto invalida la session en lugar de propagar el error.
	require.NoError(t, sessions.Set(ctx, sessionKeyPrefix+"bad", []byte("{nope"), time.Hour))
	_, err = s.Refresh(ctx, "bad")
	assert.ErrorIs(t, err, ErrRefreshInvalid)
	_, ok := sessions.data[sessionKeyPrefix+"bad"]
	assert.False(t, ok)
}

func TestRefreshReportsPendingStatus(t *testing.T) {
	s, sessions, profiles := newTestAuth(t)
	ctx := context.Background()

	profiles.byID["u2"] = &repository.Profile{ID: "u2", FullName: "Grace"}
	seedSession(t, sessions, "tok-u2", "u2")

	resp, err := s.Refresh(ctx, "tok-u2")
	require.NoError(t, err)
	assert.Equal(t, string(gate.PendingApproval), resp.Status,
		"una cuenta sin aprobar igual puede refrescar, el status lo dice")
}

func TestSignOutIsIdempotent(t *testing.T) {
	s, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	seedSession(t, sessions, "tok", "u1")

	require.NoError(t, s.SignOut(ctx, "tok"))
	require.NoError(t, s.SignOut(ctx, "tok"))
	require.NoError(t, s.SignOut(ctx, ""))

	_, err := s.Refresh(ctx, "tok")
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestStatusChecksGate(t *testing.T) {
	s, _, profiles := newTestAuth(t)
	ctx := context.Background()

	assert.Equal(t, string(gate.Approved), s.Status(ctx, "u1").Status)

	profiles.byID["u3"] = &repository.Profile{ID: "u3"}
	assert.Equal(t, string(gate.PendingApproval), s.Status(ctx, "u3").Status)
	assert.Equal(t, string(gate.PendingApproval), s.Status(ctx, "ghost").Status)
	assert.Equal(t, string(gate.Unauthenticated), s.Status(ctx, "").Status)

	// La sala de espera termina cuando un operador aprueba: el siguiente
	// "Check Status" ya lo ve.
	_, err := profiles.SetAllowed(ctx, "u3", true)
	require.NoError(t, err)
	assert.Equal(t, string(gate.Approved), s.Status(ctx, "u3").Status)
}

func TestSignInWithoutGoogleConfigured(t *testing.T) {
	s, _, _ := newTestAuth(t)

	_, err := s.AuthURL(context.Background(), "state", "nonce")
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}
