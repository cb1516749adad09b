package repository

import (
	"context"
	"time"
)

// Lecture es una clase en video dentro de un curso.
type Lecture struct {
	ID           string
	CreatedAt    time.Time
	CourseID     string
	Title        string
	Description  string
	VideoURL     string
	Duration     string
	Order        int
	ThumbnailURL string
}

// PlaybackProgress es la última posición de reproducción conocida para un
// par (user, lecture). Fracción 0.0–1.0, last-write-wins: puede retroceder
// si el usuario hace seek hacia atrás.
type PlaybackProgress struct {
	UserID       string
	LectureID    string
	Progress     float64
	LastAccessed time.Time
}

// UpsertProgressInput contiene los datos del upsert de progreso.
type UpsertProgressInput struct {
	UserID    string
	LectureID string
	Progress  float64
}

// LectureRepository define operaciones sobre lectures y lecture_progress.
type LectureRepository interface {
	// ListByCourse retorna las lectures de un curso ordenadas por "order".
	ListByCourse(ctx context.Context, courseID string) ([]Lecture, error)

	// GetByID busca una lecture. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Lecture, error)

	// UpsertProgress guarda la posición sobre la clave (user_id, lecture_id),
	// pisando cualquier valor anterior.
	UpsertProgress(ctx context.Context, input UpsertProgressInput) error

	// GetProgress retorna el progreso guardado. ErrNotFound si nunca se reportó.
	GetProgress(ctx context.Context, userID, lectureID string) (*PlaybackProgress, error)
}
