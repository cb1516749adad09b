// Package bootstrap corre tareas de primer arranque del servidor.
//
// En un despliegue nuevo la tabla de perfiles está vacía y nadie puede
// aprobar a nadie: la lista admission.bootstrap_allowed de la config
// rompe ese ciclo pre-aprobando IDs conocidos al arrancar.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditya1111/learnhub/internal/audit"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// EnsureAllowed garantiza que cada ID de la lista tenga un perfil con
// is_allowed en true. Crea el perfil si la cuenta todavía no hizo su
// primer sign-in; el perfil se completa (nombre, avatar) cuando lo haga.
// Idempotente: correr dos veces no cambia nada.
func EnsureAllowed(ctx context.Context, profiles repository.ProfileRepository, ids []string) error {
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := ensureOne(ctx, profiles, id); err != nil {
			return fmt.Errorf("bootstrap allow %s: %w", id, err)
		}
	}
	return nil
}

func ensureOne(ctx context.Context, profiles repository.ProfileRepository, id string) error {
	p, err := profiles.GetByID(ctx, id)
	if err != nil {
		if !repository.IsNotFound(err) {
			return err
		}
		if p, err = profiles.Create(ctx, repository.CreateProfileInput{ID: id}); err != nil {
			// Otro proceso del despliegue pudo ganar el insert.
			if !repository.IsConflict(err) {
				return err
			}
			if p, err = profiles.GetByID(ctx, id); err != nil {
				return err
			}
		}
	}

	if p.IsAllowed {
		return nil
	}
	if _, err := profiles.SetAllowed(ctx, id, true); err != nil {
		return err
	}
	audit.Log(ctx, audit.EventBootstrapAllow, logger.UserID(id))
	return nil
}
