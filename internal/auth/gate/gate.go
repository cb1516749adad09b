// Package gate decide el estado de admision de un usuario.
//
// La plataforma es de acceso restringido: cualquier cuenta de Google
// puede iniciar sesion, pero solo los perfiles con is_allowed en true
// ven contenido. Todo lo demas queda en sala de espera.
package gate

import (
	"context"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Status es el estado de admision resuelto para una sesion.
type Status string

const (
	// Unauthenticated: no hay identidad verificada.
	Unauthenticated Status = "unauthenticated"
	// PendingApproval: perfil creado pero sin aprobar por un admin.
	PendingApproval Status = "pending_approval"
	// Approved: perfil en la lista de admitidos.
	Approved Status = "approved"
)

// Gate resuelve el estado de admision contra el repositorio de perfiles.
type Gate struct {
	profiles repository.ProfileRepository
}

func New(profiles repository.ProfileRepository) *Gate {
	return &Gate{profiles: profiles}
}

// EnsureProfile garantiza que exista un perfil para la identidad dada.
// En el primer inicio de sesion lo crea con is_allowed en false; en los
// siguientes devuelve el existente sin tocar la bandera de admision.
func (g *Gate) EnsureProfile(ctx context.Context, in repository.CreateProfileInput) (*repository.Profile, error) {
	p, err := g.profiles.GetByID(ctx, in.ID)
	if err == nil {
		return p, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	p, err = g.profiles.Create(ctx, in)
	if err != nil {
		// Dos logins concurrentes de la misma cuenta pueden chocar en el
		// insert; el perdedor relee el perfil que creo el otro.
		if repository.IsConflict(err) {
			return g.profiles.GetByID(ctx, in.ID)
		}
		return nil, err
	}
	logger.From(ctx).Info("perfil creado en sala de espera",
		logger.Layer("gate"), logger.UserID(p.ID))
	return p, nil
}

// Check resuelve el estado de admision del usuario. Ante cualquier
// error de lectura responde PendingApproval: el gate falla cerrado,
// nunca concede acceso que no pueda confirmar.
func (g *Gate) Check(ctx context.Context, userID string) Status {
	if userID == "" {
		return Unauthenticated
	}
	p, err := g.profiles.GetByID(ctx, userID)
	if err != nil {
		if !repository.IsNotFound(err) {
			logger.From(ctx).Warn("no se pudo resolver admision, se niega acceso",
				logger.Layer("gate"), logger.UserID(userID), logger.Err(err))
		}
		return PendingApproval
	}
	if p.IsAllowed {
		return Approved
	}
	return PendingApproval
}
