package repository

import (
	"context"
	"time"
)

// Profile representa el perfil de una identidad que completó sign-in.
// Invariante: existe exactamente una fila por identidad que alguna vez
// completó el flujo OAuth. IsAllowed lo flipea un operador, nunca el server
// por sí solo.
type Profile struct {
	ID        string
	FullName  string
	AvatarURL string
	IsAllowed bool
	CreatedAt time.Time
}

// CreateProfileInput contiene los datos para crear un perfil.
// IsAllowed arranca siempre en false; la aprobación es out-of-band.
type CreateProfileInput struct {
	ID        string // subject de la identidad (no se genera)
	FullName  string
	AvatarURL string
}

// UpdateProfileInput contiene los campos actualizables por el propio usuario.
type UpdateProfileInput struct {
	FullName  *string
	AvatarURL *string
}

// ProfileRepository define operaciones sobre la tabla profiles.
type ProfileRepository interface {
	// GetByID busca un perfil por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Profile, error)

	// Create crea un perfil con is_allowed=false.
	// Retorna ErrConflict si el ID ya existe.
	Create(ctx context.Context, input CreateProfileInput) (*Profile, error)

	// Update actualiza campos del perfil (nombre, avatar).
	Update(ctx context.Context, id string, input UpdateProfileInput) (*Profile, error)

	// SetAllowed flipea el flag de admisión. Operación de operador.
	SetAllowed(ctx context.Context, id string, allowed bool) (*Profile, error)

	// ListByAllowed lista perfiles filtrando por el flag de admisión.
	ListByAllowed(ctx context.Context, allowed bool) ([]Profile, error)
}
