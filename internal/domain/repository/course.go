package repository

import (
	"context"
	"time"
)

// Course representa un curso publicado.
type Course struct {
	ID          string
	CreatedAt   time.Time
	Title       string
	Instructor  string
	Duration    string
	Lessons     string
	Students    string
	Description string
	ImageURL    string
	Curriculum  []CurriculumItem
}

// CurriculumItem es una entrada del temario del curso (columna jsonb).
type CurriculumItem struct {
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
}

// CourseEnrollment vincula un usuario con un curso.
// CompletedLessons es un set de índices de lección; Progress es el
// porcentaje derivado sobre el total de lecciones.
type CourseEnrollment struct {
	ID               string
	CreatedAt        time.Time
	UserID           string
	CourseID         string
	Progress         float64
	CompletedLessons []int
	LastAccessed     time.Time
}

// EnrolledCourse es una enrollment con su curso joineado (pantalla
// "enrolled courses").
type EnrolledCourse struct {
	Enrollment CourseEnrollment
	Course     Course
}

// CreateEnrollmentInput contiene los datos para crear una enrollment.
type CreateEnrollmentInput struct {
	UserID   string
	CourseID string
}

// UpdateEnrollmentInput actualiza el avance de lecciones de una enrollment.
type UpdateEnrollmentInput struct {
	CompletedLessons []int
	Progress         float64
	LastAccessed     time.Time
}

// CourseRepository define operaciones sobre courses y course_enrollments.
type CourseRepository interface {
	// List retorna todos los cursos, más recientes primero.
	List(ctx context.Context) ([]Course, error)

	// GetByID busca un curso. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Course, error)

	// ListEnrollments retorna las enrollments del usuario con el curso joineado.
	ListEnrollments(ctx context.Context, userID string) ([]EnrolledCourse, error)

	// GetEnrollment busca la enrollment (courseID, userID).
	// Retorna ErrNotFound si el usuario no está enrolado.
	GetEnrollment(ctx context.Context, courseID, userID string) (*CourseEnrollment, error)

	// CreateEnrollment crea una enrollment con progreso cero.
	CreateEnrollment(ctx context.Context, input CreateEnrollmentInput) (*CourseEnrollment, error)

	// UpdateEnrollment persiste el avance de lecciones.
	UpdateEnrollment(ctx context.Context, courseID, userID string, input UpdateEnrollmentInput) error
}
