package repository

import (
	"context"
	"time"
)

// StandaloneLecture es una clase suelta, fuera de cualquier curso
// (sección de lectures del home).
type StandaloneLecture struct {
	ID           string
	CreatedAt    time.Time
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	DisplayOrder int
	IsActive     bool
}

// StandaloneLectureRepository define operaciones sobre standalone_lectures
// y standalone_lecture_progress.
type StandaloneLectureRepository interface {
	// ListActive retorna las lectures activas ordenadas por display_order.
	ListActive(ctx context.Context) ([]StandaloneLecture, error)

	// GetByID busca una lecture suelta. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*StandaloneLecture, error)

	// UpsertProgress guarda la posición sobre (user_id, lecture_id),
	// misma semántica last-write-wins que LectureRepository.
	UpsertProgress(ctx context.Context, input UpsertProgressInput) error

	// GetProgress retorna el progreso guardado. ErrNotFound si nunca se reportó.
	GetProgress(ctx context.Context, userID, lectureID string) (*PlaybackProgress, error)
}
