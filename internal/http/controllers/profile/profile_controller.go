// Package profile expone /v1/me.
package profile

import (
	"errors"
	"net/http"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/profile"
	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/helpers"
	"github.com/aditya1111/learnhub/internal/http/middlewares"
	svc "github.com/aditya1111/learnhub/internal/http/services/profile"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Controller maneja las rutas de /v1/me.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Me maneja GET /v1/me.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := c.service.Get(ctx, middlewares.GetUserID(ctx))
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound)
			return
		}
		logger.From(ctx).Error("no se pudo leer el perfil",
			logger.Layer("controller"), logger.Op("Profile.Me"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Update maneja PATCH /v1/me.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Update(ctx, middlewares.GetUserID(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrNothingToUpdate):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("no fields to update"))
		case repository.IsNotFound(err):
			httperrors.WriteError(w, httperrors.ErrNotFound)
		default:
			logger.From(ctx).Error("no se pudo actualizar el perfil",
				logger.Layer("controller"), logger.Op("Profile.Update"), logger.Err(err))
			httperrors.WriteError(w, err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
