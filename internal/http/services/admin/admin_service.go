// Package admin implementa las operaciones de operador sobre la lista
// de admitidos.
package admin

import (
	"context"

	"github.com/aditya1111/learnhub/internal/audit"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/admin"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Service define las operaciones de operador.
type Service interface {
	// ListProfiles lista perfiles por estado de admisión.
	ListProfiles(ctx context.Context, allowed bool) ([]dto.ProfileView, error)

	// SetAllowed aprueba o revoca la admisión de un perfil.
	SetAllowed(ctx context.Context, userID string, allowed bool) (*dto.ProfileView, error)
}

// Deps contiene las dependencias del servicio.
type Deps struct {
	Profiles repository.ProfileRepository
}

type service struct {
	profiles repository.ProfileRepository
}

func NewService(deps Deps) Service {
	return &service{profiles: deps.Profiles}
}

func (s *service) ListProfiles(ctx context.Context, allowed bool) ([]dto.ProfileView, error) {
	list, err := s.profiles.ListByAllowed(ctx, allowed)
	if err != nil {
		return nil, err
	}
	return dto.ProfilesFromDomain(list), nil
}

func (s *service) SetAllowed(ctx context.Context, userID string, allowed bool) (*dto.ProfileView, error) {
	p, err := s.profiles.SetAllowed(ctx, userID, allowed)
	if err != nil {
		return nil, err
	}
	audit.Log(ctx, audit.EventProfileAllowed,
		logger.UserID(userID), logger.Bool("allowed", allowed))

	views := dto.ProfilesFromDomain([]repository.Profile{*p})
	return &views[0], nil
}
