// Package auth expone los endpoints de autenticación.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	dto "github.com/aditya1111/learnhub/internal/http/dto/auth"
	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/helpers"
	"github.com/aditya1111/learnhub/internal/http/middlewares"
	svc "github.com/aditya1111/learnhub/internal/http/services/auth"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Controller maneja las rutas de /v1/auth.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// URL maneja GET /v1/auth/google/url.
// Devuelve la URL del consent screen; el state lo genera el server y el
// cliente debe reenviarlo intacto.
func (c *Controller) URL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		var b [16]byte
		_, _ = rand.Read(b[:])
		state = hex.EncodeToString(b[:])
	}
	nonce := strings.TrimSpace(r.URL.Query().Get("nonce"))

	url, err := c.service.AuthURL(ctx, state, nonce)
	if err != nil {
		logger.From(ctx).Error("no se pudo construir auth url",
			logger.Layer("controller"), logger.Op("Auth.URL"), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithCause(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.URLResponse{URL: url})
}

// SignIn maneja POST /v1/auth/google.
func (c *Controller) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.SignIn"))

	var req dto.SignInRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.SignIn(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrCodeMissing):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("code required"))
		case errors.Is(err, svc.ErrSignInFailed):
			httperrors.WriteError(w, httperrors.ErrSignInFailed.WithCause(err))
		case errors.Is(err, svc.ErrGoogleDisabled):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("google oauth not configured"))
		default:
			log.Error("sign-in falló", logger.Err(err))
			httperrors.WriteError(w, err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Refresh maneja POST /v1/auth/refresh.
func (c *Controller) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.RefreshRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, svc.ErrRefreshInvalid) {
			httperrors.WriteError(w, httperrors.ErrSessionExpired)
			return
		}
		logger.From(ctx).Error("refresh falló",
			logger.Layer("controller"), logger.Op("Auth.Refresh"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// SignOut maneja POST /v1/auth/signout.
func (c *Controller) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.SignOutRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.service.SignOut(ctx, req.RefreshToken); err != nil {
		logger.From(ctx).Error("signout falló",
			logger.Layer("controller"), logger.Op("Auth.SignOut"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status maneja GET /v1/auth/status. Requiere access token: es el
// re-chequeo explícito de admisión desde la sala de espera.
func (c *Controller) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)
	helpers.WriteJSON(w, http.StatusOK, c.service.Status(ctx, userID))
}
