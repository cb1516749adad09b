// Package courses contiene los DTOs de cursos, enrollments y lectures.
package courses

import (
	"time"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

// CurriculumItem es una entrada del temario.
type CurriculumItem struct {
	Title     string `json:"title"`
	Duration  string `json:"duration,omitempty"`
	Type      string `json:"type,omitempty"`
	Completed bool   `json:"completed"`
}

// Course es la vista pública de un curso.
type Course struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Instructor  string           `json:"instructor,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Lessons     string           `json:"lessons,omitempty"`
	Students    string           `json:"students,omitempty"`
	Description string           `json:"description,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Curriculum  []CurriculumItem `json:"curriculum,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Lecture es la vista pública de una clase de curso.
type Lecture struct {
	ID           string `json:"id"`
	CourseID     string `json:"course_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Order        int    `json:"order"`
}

// Enrollment es la vista de una inscripción.
type Enrollment struct {
	ID               string    `json:"id"`
	CourseID         string    `json:"course_id"`
	Progress         float64   `json:"progress"`
	CompletedLessons []int     `json:"completed_lessons"`
	LastAccessed     time.Time `json:"last_accessed"`
	CreatedAt        time.Time `json:"created_at"`
}

// EnrolledCourse es una inscripción con su curso.
type EnrolledCourse struct {
	Enrollment Enrollment `json:"enrollment"`
	Course     Course     `json:"course"`
}

// UpdateEnrollmentRequest es el body de PATCH /v1/courses/{id}/enrollment.
type UpdateEnrollmentRequest struct {
	CompletedLessons []int `json:"completed_lessons"`
}

// ProgressRequest es el body de los endpoints de progreso de video.
type ProgressRequest struct {
	// Progress es la fracción vista, 0.0 a 1.0.
	Progress float64 `json:"progress"`
}

// ProgressResponse es la respuesta con el progreso guardado.
type ProgressResponse struct {
	LectureID    string    `json:"lecture_id"`
	Progress     float64   `json:"progress"`
	LastAccessed time.Time `json:"last_accessed"`
}

// FromDomain convierte un curso de dominio.
func FromDomain(c *repository.Course) Course {
	items := make([]CurriculumItem, 0, len(c.Curriculum))
	for _, it := range c.Curriculum {
		items = append(items, CurriculumItem{
			Title:     it.Title,
			Duration:  it.Duration,
			Type:      it.Type,
			Completed: it.Completed,
		})
	}
	return Course{
		ID:          c.ID,
		Title:       c.Title,
		Instructor:  c.Instructor,
		Duration:    c.Duration,
		Lessons:     c.Lessons,
		Students:    c.Students,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Curriculum:  items,
		CreatedAt:   c.CreatedAt,
	}
}

// ListFromDomain convierte una lista de cursos.
func ListFromDomain(in []repository.Course) []Course {
	out := make([]Course, 0, len(in))
	for i := range in {
		out = append(out, FromDomain(&in[i]))
	}
	return out
}

// LectureFromDomain convierte una lecture de dominio.
func LectureFromDomain(l *repository.Lecture) Lecture {
	return Lecture{
		ID:           l.ID,
		CourseID:     l.CourseID,
		Title:        l.Title,
		Description:  l.Description,
		VideoURL:     l.VideoURL,
		ThumbnailURL: l.ThumbnailURL,
		Duration:     l.Duration,
		Order:        l.Order,
	}
}

// LecturesFromDomain convierte una lista de lectures.
func LecturesFromDomain(in []repository.Lecture) []Lecture {
	out := make([]Lecture, 0, len(in))
	for i := range in {
		out = append(out, LectureFromDomain(&in[i]))
	}
	return out
}

// EnrollmentFromDomain convierte una enrollment de dominio.
// CompletedLessons nunca se serializa como null.
func EnrollmentFromDomain(e *repository.CourseEnrollment) Enrollment {
	lessons := e.CompletedLessons
	if lessons == nil {
		lessons = []int{}
	}
	return Enrollment{
		ID:               e.ID,
		CourseID:         e.CourseID,
		Progress:         e.Progress,
		CompletedLessons: lessons,
		LastAccessed:     e.LastAccessed,
		CreatedAt:        e.CreatedAt,
	}
}

// EnrolledFromDomain convierte la lista de cursos inscriptos.
func EnrolledFromDomain(in []repository.EnrolledCourse) []EnrolledCourse {
	out := make([]EnrolledCourse, 0, len(in))
	for i := range in {
		out = append(out, EnrolledCourse{
			Enrollment: EnrollmentFromDomain(&in[i].Enrollment),
			Course:     FromDomain(&in[i].Course),
		})
	}
	return out
}

// ProgressFromDomain convierte un progreso de reproducción.
func ProgressFromDomain(p *repository.PlaybackProgress) ProgressResponse {
	return ProgressResponse{
		LectureID:    p.LectureID,
		Progress:     p.Progress,
		LastAccessed: p.LastAccessed,
	}
}
