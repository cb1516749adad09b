// Package doubts contiene los DTOs del módulo de dudas.
package doubts

import (
	"time"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

// Doubt es la vista pública de una duda.
type Doubt struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CourseID    *string   `json:"course_id,omitempty"`
	LectureID   *string   `json:"lecture_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reply es una respuesta del hilo.
type Reply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	IsTeacher bool      `json:"is_teacher"`
	CreatedAt time.Time `json:"created_at"`
}

// Thread es una duda con su hilo completo.
type Thread struct {
	Doubt   Doubt   `json:"doubt"`
	Replies []Reply `json:"replies"`
}

// CreateRequest es el body de POST /v1/doubts.
type CreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CourseID    *string `json:"course_id,omitempty"`
	LectureID   *string `json:"lecture_id,omitempty"`
}

// ReplyRequest es el body de POST /v1/doubts/{id}/replies.
type ReplyRequest struct {
	Content string `json:"content"`
	// IsTeacher marca la respuesta como de un docente; la primera de un
	// docente avanza la duda de pending a answered.
	IsTeacher bool `json:"is_teacher"`
}

// FromDomain convierte una duda de dominio.
func FromDomain(d *repository.Doubt) Doubt {
	return Doubt{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		CourseID:    d.CourseID,
		LectureID:   d.LectureID,
		CreatedAt:   d.CreatedAt,
	}
}

// ListFromDomain convierte una lista de dudas.
func ListFromDomain(in []repository.Doubt) []Doubt {
	out := make([]Doubt, 0, len(in))
	for i := range in {
		out = append(out, FromDomain(&in[i]))
	}
	return out
}

// RepliesFromDomain convierte las respuestas de un hilo.
func RepliesFromDomain(in []repository.DoubtReply) []Reply {
	out := make([]Reply, 0, len(in))
	for _, r := range in {
		out = append(out, Reply{
			ID:        r.ID,
			UserID:    r.UserID,
			Content:   r.Content,
			IsTeacher: r.IsTeacher,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
