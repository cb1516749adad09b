package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/auth/gate"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	jwtx "github.com/aditya1111/learnhub/internal/jwt"
)

// allowlistProfiles es un ProfileRepository mínimo para el gate.
type allowlistProfiles struct {
	byID map[string]*repository.Profile
}

func (m *allowlistProfiles) GetByID(_ context.Context, id string) (*repository.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *allowlistProfiles) Create(_ context.Context, in repository.CreateProfileInput) (*repository.Profile, error) {
	p := &repository.Profile{ID: in.ID, FullName: in.FullName}
	m.byID[in.ID] = p
	return p, nil
}

func (m *allowlistProfiles) Update(_ context.Context, id string, _ repository.UpdateProfileInput) (*repository.Profile, error) {
	return m.GetByID(context.Background(), id)
}

func (m *allowlistProfiles) SetAllowed(_ context.Context, id string, allowed bool) (*repository.Profile, error) {
	p, err := m.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	p.IsAllowed = allowed
	return p, nil
}

func (m *allowlistProfiles) ListByAllowed(_ context.Context, _ bool) ([]repository.Profile, error) {
	return nil, nil
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAuth(t *testing.T) {
	issuer := jwtx.NewIssuer("learnhub-test", "secret", time.Minute)
	token, _, err := issuer.IssueAccess("u1", "Ada", "ada@example.com")
	require.NoError(t, err)

	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := RequireAuth(issuer)(next)

	t.Run("sin token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/home", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token de otro secreto", func(t *testing.T) {
		other := jwtx.NewIssuer("learnhub-test", "otro-secreto", time.Minute)
		bad, _, err := other.IssueAccess("u1", "Ada", "ada@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/home", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token valido deja la identidad en el contexto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/home", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", seen.UserID)
		assert.Equal(t, "ada@example.com", seen.Email)
	})
}

func TestRequireApproved(t *testing.T) {
	profiles := &allowlistProfiles{byID: map[string]*repository.Profile{
		"approved": {ID: "approved", IsAllowed: true},
		"pending":  {ID: "pending"},
	}}
	g := gate.New(profiles)

	run := func(userID string) *httptest.ResponseRecorder {
		next, _ := okHandler()
		h := RequireApproved(g)(next)
		req := httptest.NewRequest(http.MethodGet, "/v1/home", nil)
		if userID != "" {
			req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: userID}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, run("approved").Code)
	assert.Equal(t, http.StatusForbidden, run("pending").Code)
	assert.Equal(t, http.StatusUnauthorized, run("").Code)

	rec := run("pending")
	assert.Contains(t, rec.Body.String(), "ADMISSION_PENDING")
}

func TestRequireAdminKey(t *testing.T) {
	run := func(configured, sent string) *httptest.ResponseRecorder {
		next, _ := okHandler()
		h := RequireAdminKey(configured)(next)
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/profiles", nil)
		if sent != "" {
			req.Header.Set("X-Admin-Key", sent)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, run("k1", "k1").Code)
	assert.Equal(t, http.StatusForbidden, run("k1", "wrong").Code)
	assert.Equal(t, http.StatusForbidden, run("k1", "").Code)

	// Sin key configurada la API de admin queda apagada, incluso con header.
	assert.Equal(t, http.StatusForbidden, run("", "k1").Code)
}
