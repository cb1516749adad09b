package repository

import (
	"context"
	"time"
)

// DoubtStatus es el ciclo de vida de una duda. Solo avanza:
// pending → answered (primera respuesta de teacher) → resolved (acción
// explícita del usuario). Ningún código lo retrocede.
type DoubtStatus string

const (
	DoubtPending  DoubtStatus = "pending"
	DoubtAnswered DoubtStatus = "answered"
	DoubtResolved DoubtStatus = "resolved"
)

// Valid reporta si s es uno de los estados conocidos.
func (s DoubtStatus) Valid() bool {
	switch s {
	case DoubtPending, DoubtAnswered, DoubtResolved:
		return true
	}
	return false
}

// Doubt es una pregunta de un usuario, opcionalmente anclada a un curso
// o a una lecture.
type Doubt struct {
	ID          string
	CreatedAt   time.Time
	UserID      string
	Title       string
	Description string
	Status      DoubtStatus
	CourseID    *string
	LectureID   *string
}

// DoubtReply es una respuesta dentro del hilo de una duda.
type DoubtReply struct {
	ID        string
	CreatedAt time.Time
	DoubtID   string
	UserID    string
	Content   string
	IsTeacher bool
}

// CreateDoubtInput contiene los datos para crear una duda (status=pending).
type CreateDoubtInput struct {
	UserID      string
	Title       string
	Description string
	CourseID    *string
	LectureID   *string
}

// CreateReplyInput contiene los datos para crear una respuesta.
type CreateReplyInput struct {
	DoubtID   string
	UserID    string
	Content   string
	IsTeacher bool
}

// DoubtRepository define operaciones sobre doubts y doubt_replies.
type DoubtRepository interface {
	// ListByUser retorna las dudas del usuario, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Doubt, error)

	// GetByID busca una duda. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Doubt, error)

	// ListReplies retorna las respuestas de una duda en orden cronológico.
	ListReplies(ctx context.Context, doubtID string) ([]DoubtReply, error)

	// Create crea una duda con status pending.
	Create(ctx context.Context, input CreateDoubtInput) (*Doubt, error)

	// CreateReply agrega una respuesta al hilo.
	CreateReply(ctx context.Context, input CreateReplyInput) (*DoubtReply, error)

	// UpdateStatus setea el status y retorna la duda mutada.
	// Retorna ErrNotFound si la duda no existe.
	UpdateStatus(ctx context.Context, id string, status DoubtStatus) (*Doubt, error)
}
