// Package home expone el contenido de la pantalla principal.
package home

import (
	"net/http"

	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/helpers"
	svc "github.com/aditya1111/learnhub/internal/http/services/home"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Controller maneja las rutas de /v1/home.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Home maneja GET /v1/home.
func (c *Controller) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := c.service.Get(ctx)
	if err != nil {
		logger.From(ctx).Error("no se pudo armar el home",
			logger.Layer("controller"), logger.Op("Home.Home"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Carousel maneja GET /v1/home/carousel.
func (c *Controller) Carousel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	banners, err := c.service.Carousel(ctx)
	if err != nil {
		logger.From(ctx).Error("no se pudo leer el carrusel",
			logger.Layer("controller"), logger.Op("Home.Carousel"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, banners)
}

// Lectures maneja GET /v1/home/lectures.
func (c *Controller) Lectures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lectures, err := c.service.Lectures(ctx)
	if err != nil {
		logger.From(ctx).Error("no se pudieron leer las lectures",
			logger.Layer("controller"), logger.Op("Home.Lectures"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, lectures)
}
