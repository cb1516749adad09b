package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path crea un campo para el path del request.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Duration crea un campo para la duración del request.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// ClientIP crea un campo para la IP del cliente.
func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

// Campos estándar de negocio.

// UserID crea un campo para el ID del usuario.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// CourseID crea un campo para el ID de un curso.
func CourseID(v string) zap.Field { return zap.String("course_id", v) }

// LectureID crea un campo para el ID de una lecture.
func LectureID(v string) zap.Field { return zap.String("lecture_id", v) }

// DoubtID crea un campo para el ID de una duda.
func DoubtID(v string) zap.Field { return zap.String("doubt_id", v) }

// Progress crea un campo para una fracción de progreso (0..1).
func Progress(v float64) zap.Field { return zap.Float64("progress", v) }

// Campos estándar de sistema.

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op crea un campo para la operación actual.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer crea un campo para la capa (controller, service, repository).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Err crea un campo para un error.
func Err(err error) zap.Field { return zap.Error(err) }

// Campos genéricos.

// Count crea un campo para un conteo.
func Count(v int) zap.Field { return zap.Int("count", v) }

// ID crea un campo genérico para un ID.
func ID(v string) zap.Field { return zap.String("id", v) }

// Key crea un campo genérico para una clave.
func Key(v string) zap.Field { return zap.String("key", v) }

// String crea un campo string genérico.
func String(key, v string) zap.Field { return zap.String(key, v) }

// Bool crea un campo bool genérico.
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }

// Any crea un campo genérico para cualquier tipo.
func Any(key string, v any) zap.Field { return zap.Any(key, v) }
