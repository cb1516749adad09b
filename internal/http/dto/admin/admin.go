// Package admin contiene los DTOs de las rutas de operador.
package admin

import (
	"time"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

// ProfileView es la vista de operador de un perfil.
type ProfileView struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	IsAllowed bool      `json:"is_allowed"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse es la respuesta de GET /v1/admin/profiles.
type ListResponse struct {
	Profiles []ProfileView `json:"profiles"`
}

// SetAllowedRequest es el body de PUT /v1/admin/profiles/{id}/allowed.
type SetAllowedRequest struct {
	Allowed bool `json:"allowed"`
}

// ProfilesFromDomain convierte perfiles de dominio a la vista de operador.
func ProfilesFromDomain(in []repository.Profile) []ProfileView {
	out := make([]ProfileView, 0, len(in))
	for _, p := range in {
		out = append(out, ProfileView{
			ID:        p.ID,
			FullName:  p.FullName,
			IsAllowed: p.IsAllowed,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}
