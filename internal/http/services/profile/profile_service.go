// Package profile implementa las operaciones de /v1/me.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/profile"
)

// Errores del servicio.
var (
	ErrNothingToUpdate = fmt.Errorf("no fields to update")
)

// Service define las operaciones de perfil propio.
type Service interface {
	Get(ctx context.Context, userID string) (*dto.Response, error)
	Update(ctx context.Context, userID string, req dto.UpdateRequest) (*dto.Response, error)
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

func (s *service) Get(ctx context.Context, userID string) (*dto.Response, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := dto.FromDomain(p)
	return &view, nil
}

func (s *service) Update(ctx context.Context, userID string, req dto.UpdateRequest) (*dto.Response, error) {
	input := repository.UpdateProfileInput{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		input.FullName = &name
	}
	if req.AvatarURL != nil {
		url := strings.TrimSpace(*req.AvatarURL)
		input.AvatarURL = &url
	}
	if input.FullName == nil && input.AvatarURL == nil {
		return nil, ErrNothingToUpdate
	}

	p, err := s.profiles.Update(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	view := dto.FromDomain(p)
	return &view, nil
}
