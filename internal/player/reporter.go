package player

import (
	"context"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	"github.com/aditya1111/learnhub/internal/metrics"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// ProgressWriter persiste la fraccion vista de una leccion. Lo cumplen
// los repositorios de lecciones de curso y las lecciones sueltas.
type ProgressWriter interface {
	UpsertProgress(ctx context.Context, input repository.UpsertProgressInput) error
}

// Reporter persiste el progreso de un (usuario, leccion). La escritura
// es last-write-wins: un rebobinado pisa el valor anterior con uno
// menor y eso es correcto. Sin identidad no se escribe nada, y un
// error de persistencia se loguea y se descarta; el progreso es dato
// de cortesia y nunca debe interrumpir la reproduccion.
type Reporter struct {
	writer    ProgressWriter
	userID    string
	lectureID string
}

func NewReporter(writer ProgressWriter, userID, lectureID string) *Reporter {
	return &Reporter{writer: writer, userID: userID, lectureID: lectureID}
}

// Report implementa ReportFunc.
func (r *Reporter) Report(ctx context.Context, fraction float64) {
	if r.userID == "" {
		return
	}
	err := r.writer.UpsertProgress(ctx, repository.UpsertProgressInput{
		UserID:    r.userID,
		LectureID: r.lectureID,
		Progress:  fraction,
	})
	if err != nil {
		metrics.ProgressWritesTotal.WithLabelValues("error").Inc()
		logger.From(ctx).Warn("no se pudo persistir progreso, se descarta",
			logger.Layer("player"),
			logger.UserID(r.userID),
			logger.LectureID(r.lectureID),
			logger.Progress(fraction),
			logger.Err(err))
		return
	}
	metrics.ProgressWritesTotal.WithLabelValues("ok").Inc()
}
