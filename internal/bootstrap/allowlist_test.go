package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type fakeProfiles struct {
	byID map[string]*repository.Profile
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*repository.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Create(_ context.Context, in repository.CreateProfileInput) (*repository.Profile, error) {
	if _, ok := f.byID[in.ID]; ok {
		return nil, repository.ErrConflict
	}
	p := &repository.Profile{ID: in.ID, FullName: in.FullName, CreatedAt: time.Now()}
	f.byID[in.ID] = p
	return p, nil
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
	return p, nil
}

func (f *fakeProfiles) ListByAllowed(_ context.Context, _ bool) ([]repository.Profile, error) {
	return nil, nil
}

func TestEnsureAllowed(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]*repository.Profile{
		"existing": {ID: "existing", FullName: "Ada"},
		"approved": {ID: "approved", IsAllowed: true},
	}}
	ctx := context.Background()

	err := EnsureAllowed(ctx, profiles, []string{"existing", "approved", "new-id", "  ", ""})
	require.NoError(t, err)

	// El perfil existente quedó aprobado sin perder sus datos.
	assert.True(t, profiles.byID["existing"].IsAllowed)
	assert.Equal(t, "Ada", profiles.byID["existing"].FullName)

	// El ID sin perfil previo se creó ya aprobado.
	require.Contains(t, profiles.byID, "new-id")
	assert.True(t, profiles.byID["new-id"].IsAllowed)

	// Idempotente.
	require.NoError(t, EnsureAllowed(ctx, profiles, []string{"existing", "new-id"}))
	assert.True(t, profiles.byID["existing"].IsAllowed)
}
