// Package profile contiene los DTOs de /v1/me.
package profile

import (
	"time"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

// Response es la vista pública de un perfil.
type Response struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsAllowed bool      `json:"is_allowed"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRequest es el body de PATCH /v1/me. Campos nil no se tocan.
type UpdateRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// FromDomain convierte un perfil de dominio a la vista pública.
func FromDomain(p *repository.Profile) Response {
	return Response{
		ID:        p.ID,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		IsAllowed: p.IsAllowed,
		CreatedAt: p.CreatedAt,
	}
}
