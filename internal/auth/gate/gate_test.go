package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

// fakeProfiles es un ProfileRepository en memoria para los tests del gate.
type fakeProfiles struct {
	byID    map[string]*repository.Profile
	failGet error
	created int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[string]*repository.Profile{}}
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*repository.Profile, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Create(_ context.Context, in repository.CreateProfileInput) (*repository.Profile, error) {
	if _, ok := f.byID[in.ID]; ok {
		return nil, repository.ErrConflict
	}
	f.created++
	p := &repository.Profile{ID: in.ID, FullName: in.FullName, AvatarURL: in.AvatarURL, IsAllowed: false}
	f.byID[in.ID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Update(_ context.Context, id string, _ repository.UpdateProfileInput) (*repository.Profile, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeProfiles) SetAllowed(_ context.Context, id string, allowed bool) (*repository.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.IsAllowed = allowed
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) ListByAllowed(_ context.Context, allowed bool) ([]repository.Profile, error) {
	var out []repository.Profile
	for _, p := range f.byID {
		if p.IsAllowed == allowed {
			out = append(out, *p)
		}
	}
	return out, nil
}

func TestEnsureProfileCreatesOnFirstSignIn(t *testing.T) {
	profiles := newFakeProfiles()
	g := New(profiles)

	p, err := g.EnsureProfile(context.Background(), repository.CreateProfileInput{
		ID: "user-1", FullName: "Ana Torres", AvatarURL: "https://a/x.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.False(t, p.IsAllowed, "un perfil nuevo arranca sin admision")
	assert.Equal(t, 1, profiles.created)
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	profiles := newFakeProfiles()
	g := New(profiles)

	_, err := g.EnsureProfile(context.Background(), repository.CreateProfileInput{ID: "user-1", FullName: "Ana"})
	require.NoError(t, err)

	_, err = profiles.SetAllowed(context.Background(), "user-1", true)
	require.NoError(t, err)

	// Un segundo sign-in no debe pisar el flag de admision.
	p, err := g.EnsureProfile(context.Background(), repository.CreateProfileInput{ID: "user-1", FullName: "Ana"})
	require.NoError(t, err)
	assert.True(t, p.IsAllowed)
	assert.Equal(t, 1, profiles.created)
}

func TestCheckStates(t *testing.T) {
	profiles := newFakeProfiles()
	g := New(profiles)
	ctx := context.Background()

	assert.Equal(t, Unauthenticated, g.Check(ctx, ""))

	// Sin perfil: pendiente, no error.
	assert.Equal(t, PendingApproval, g.Check(ctx, "ghost"))

	_, err := g.EnsureProfile(ctx, repository.CreateProfileInput{ID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, PendingApproval, g.Check(ctx, "user-1"))

	_, err = profiles.SetAllowed(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, Approved, g.Check(ctx, "user-1"))
}

func TestCheckFailsClosedOnStoreError(t *testing.T) {
	profiles := newFakeProfiles()
	g := New(profiles)
	ctx := context.Background()

	_, err := g.EnsureProfile(ctx, repository.CreateProfileInput{ID: "user-1"})
	require.NoError(t, err)
	_, err = profiles.SetAllowed(ctx, "user-1", true)
	require.NoError(t, err)

	profiles.failGet = errors.New("connection refused")
	assert.Equal(t, PendingApproval, g.Check(ctx, "user-1"),
		"ante un error de lectura el gate niega acceso")
}
