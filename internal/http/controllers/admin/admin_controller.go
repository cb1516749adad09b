// Package admin expone las rutas de operador.
package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/admin"
	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/helpers"
	svc "github.com/aditya1111/learnhub/internal/http/services/admin"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Controller maneja las rutas de /v1/admin.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// ListProfiles maneja GET /v1/admin/profiles?allowed=false.
// Sin query param lista los pendientes.
func (c *Controller) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	allowed := false
	if raw := r.URL.Query().Get("allowed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("allowed must be a bool"))
			return
		}
		allowed = v
	}

	list, err := c.service.ListProfiles(ctx, allowed)
	if err != nil {
		logger.From(ctx).Error("no se pudieron listar los perfiles",
			logger.Layer("controller"), logger.Op("Admin.ListProfiles"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListResponse{Profiles: list})
}

// SetAllowed maneja PUT /v1/admin/profiles/{userID}/allowed.
func (c *Controller) SetAllowed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	var req dto.SetAllowedRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	view, err := c.service.SetAllowed(ctx, userID, req.Allowed)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("profile not found"))
			return
		}
		logger.From(ctx).Error("no se pudo actualizar la admisión",
			logger.Layer("controller"), logger.Op("Admin.SetAllowed"),
			logger.UserID(userID), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, view)
}
