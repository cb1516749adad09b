// Package doubts expone el módulo de dudas.
package doubts

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/doubts"
	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/helpers"
	"github.com/aditya1111/learnhub/internal/http/middlewares"
	svc "github.com/aditya1111/learnhub/internal/http/services/doubts"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Controller maneja las rutas de /v1/doubts.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// List maneja GET /v1/doubts.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := c.service.List(ctx, middlewares.GetUserID(ctx))
	if err != nil {
		logger.From(ctx).Error("no se pudieron listar las dudas",
			logger.Layer("controller"), logger.Op("Doubts.List"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// Thread maneja GET /v1/doubts/{doubtID}.
func (c *Controller) Thread(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doubtID := chi.URLParam(r, "doubtID")

	thread, err := c.service.Thread(ctx, middlewares.GetUserID(ctx), doubtID)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrDoubtNotFound)
			return
		}
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, thread)
}

// Create maneja POST /v1/doubts.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	doubt, err := c.service.Create(ctx, middlewares.GetUserID(ctx), req)
	if err != nil {
		if errors.Is(err, svc.ErrTitleMissing) {
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("title required"))
			return
		}
		logger.From(ctx).Error("no se pudo crear la duda",
			logger.Layer("controller"), logger.Op("Doubts.Create"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, doubt)
}

// Reply maneja POST /v1/doubts/{doubtID}/replies.
func (c *Controller) Reply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doubtID := chi.URLParam(r, "doubtID")

	var req dto.ReplyRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	reply, err := c.service.Reply(ctx, middlewares.GetUserID(ctx), doubtID, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrContentMissing):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("content required"))
		case repository.IsNotFound(err):
			httperrors.WriteError(w, httperrors.ErrDoubtNotFound)
		default:
			logger.From(ctx).Error("no se pudo crear la respuesta",
				logger.Layer("controller"), logger.Op("Doubts.Reply"),
				logger.DoubtID(doubtID), logger.Err(err))
			httperrors.WriteError(w, err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, reply)
}

// Resolve maneja POST /v1/doubts/{doubtID}/resolve.
func (c *Controller) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doubtID := chi.URLParam(r, "doubtID")

	doubt, err := c.service.Resolve(ctx, middlewares.GetUserID(ctx), doubtID)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrDoubtNotFound)
			return
		}
		logger.From(ctx).Error("no se pudo resolver la duda",
			logger.Layer("controller"), logger.Op("Doubts.Resolve"),
			logger.DoubtID(doubtID), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, doubt)
}
