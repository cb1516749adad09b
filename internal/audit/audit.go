// Package audit registra acciones de operador en el log estructurado con
// una marca fija, para poder filtrarlas y retenerlas aparte del log de
// aplicación.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Eventos de operador conocidos.
const (
	EventProfileAllowed = "profile.allowed.changed"
	EventBootstrapAllow = "profile.allowed.bootstrap"
)

// Log emite un evento de auditoría. Siempre sale a nivel Info: un evento
// de operador nunca se filtra por verbosidad.
func Log(ctx context.Context, event string, fields ...zap.Field) {
	logger.From(ctx).Named("audit").Info(event,
		append([]zap.Field{zap.String("audit_event", event)}, fields...)...)
}
