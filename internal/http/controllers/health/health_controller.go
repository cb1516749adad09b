// Package health expone los endpoints de liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/aditya1111/learnhub/internal/http/helpers"
)

// Pinger chequea la conectividad de una dependencia.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller maneja /healthz y /readyz.
type Controller struct {
	db Pinger
}

func NewController(db Pinger) *Controller {
	return &Controller{db: db}
}

// Live maneja GET /healthz. Responde siempre que el proceso esté vivo.
func (c *Controller) Live(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready maneja GET /readyz. Falla si la base de datos no responde.
func (c *Controller) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if c.db != nil {
		if err := c.db.Ping(ctx); err != nil {
			helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"db":     err.Error(),
			})
			return
		}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
