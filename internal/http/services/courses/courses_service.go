// Package courses implementa el catálogo de cursos, las inscripciones y
// el progreso de reproducción.
package courses

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aditya1111/learnhub/internal/cache"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/courses"
	"github.com/aditya1111/learnhub/internal/metrics"
	"github.com/aditya1111/learnhub/internal/observability/logger"
	"github.com/aditya1111/learnhub/internal/player"
)

const listCacheKey = "courses:list:v1"

// Errores del servicio.
var (
	ErrInvalidProgress = fmt.Errorf("progress must be between 0 and 1")
)

// Service define las operaciones de cursos.
type Service interface {
	// List retorna el catálogo completo, más recientes primero.
	List(ctx context.Context) ([]dto.Course, error)

	// Get retorna un curso por ID.
	Get(ctx context.Context, courseID string) (*dto.Course, error)

	// Lectures retorna las clases del curso en orden.
	Lectures(ctx context.Context, courseID string) ([]dto.Lecture, error)

	// Enroll inscribe al usuario. Idempotente: si ya estaba inscripto
	// retorna la enrollment existente sin crear otra.
	Enroll(ctx context.Context, userID, courseID string) (*dto.Enrollment, error)

	// Enrolled retorna los cursos en los que el usuario está inscripto.
	Enrolled(ctx context.Context, userID string) ([]dto.EnrolledCourse, error)

	// Enrollment retorna la inscripción del usuario en un curso.
	Enrollment(ctx context.Context, userID, courseID string) (*dto.Enrollment, error)

	// UpdateEnrollment persiste el set de lecciones completadas y deriva
	// el porcentaje de avance.
	UpdateEnrollment(ctx context.Context, userID, courseID string, completedLessons []int) (*dto.Enrollment, error)

	// SaveLectureProgress guarda la fracción vista de una clase de curso.
	SaveLectureProgress(ctx context.Context, userID, lectureID string, progress float64) error

	// LectureProgress retorna el progreso guardado de una clase.
	LectureProgress(ctx context.Context, userID, lectureID string) (*dto.ProgressResponse, error)

	// SaveStandaloneProgress guarda la fracción vista de una clase suelta.
	SaveStandaloneProgress(ctx context.Context, userID, lectureID string, progress float64) error

	// StandaloneProgress retorna el progreso guardado de una clase suelta.
	StandaloneProgress(ctx context.Context, userID, lectureID string) (*dto.ProgressResponse, error)
}

// Deps contiene las dependencias del servicio.
type Deps struct {
	Courses    repository.CourseRepository
	Lectures   repository.LectureRepository
	Standalone repository.StandaloneLectureRepository
	Cache      cache.Cache
	CacheTTL   time.Duration
}

type service struct {
	courses    repository.CourseRepository
	lectures   repository.LectureRepository
	standalone repository.StandaloneLectureRepository
	cache      cache.Cache
	cacheTTL   time.Duration
}

func NewService(deps Deps) Service {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &service{
		courses:    deps.Courses,
		lectures:   deps.Lectures,
		standalone: deps.Standalone,
		cache:      deps.Cache,
		cacheTTL:   ttl,
	}
}

func (s *service) List(ctx context.Context) ([]dto.Course, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(listCacheKey); ok {
			var out []dto.Course
			if err := json.Unmarshal(raw, &out); err == nil {
				return out, nil
			}
			s.cache.Delete(listCacheKey)
		}
	}

	list, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.ListFromDomain(list)

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			s.cache.Set(listCacheKey, raw, s.cacheTTL)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, courseID string) (*dto.Course, error) {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	view := dto.FromDomain(c)
	return &view, nil
}

func (s *service) Lectures(ctx context.Context, courseID string) ([]dto.Lecture, error) {
	// El 404 del curso gana al listado vacío.
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	list, err := s.lectures.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.LecturesFromDomain(list), nil
}

func (s *service) Enroll(ctx context.Context, userID, courseID string) (*dto.Enrollment, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("courses"),
		logger.Op("Enroll"),
	)

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	// Chequeo previo: inscribirse dos veces devuelve la misma fila.
	if existing, err := s.courses.GetEnrollment(ctx, courseID, userID); err == nil {
		view := dto.EnrollmentFromDomain(existing)
		return &view, nil
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	created, err := s.courses.CreateEnrollment(ctx, repository.CreateEnrollmentInput{
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil {
		// Carrera entre el chequeo y el insert: el unique de la tabla
		// la resuelve, releemos la fila del ganador.
		if repository.IsConflict(err) {
			existing, gerr := s.courses.GetEnrollment(ctx, courseID, userID)
			if gerr != nil {
				return nil, gerr
			}
			view := dto.EnrollmentFromDomain(existing)
			return &view, nil
		}
		return nil, err
	}

	metrics.EnrollmentsTotal.Inc()
	log.Info("usuario inscripto", logger.UserID(userID), logger.CourseID(courseID))
	view := dto.EnrollmentFromDomain(created)
	return &view, nil
}

func (s *service) Enrolled(ctx context.Context, userID string) ([]dto.EnrolledCourse, error) {
	list, err := s.courses.ListEnrollments(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.EnrolledFromDomain(list), nil
}

func (s *service) Enrollment(ctx context.Context, userID, courseID string) (*dto.Enrollment, error) {
	e, err := s.courses.GetEnrollment(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	view := dto.EnrollmentFromDomain(e)
	return &view, nil
}

func (s *service) UpdateEnrollment(ctx context.Context, userID, courseID string, completedLessons []int) (*dto.Enrollment, error) {
	if _, err := s.courses.GetEnrollment(ctx, courseID, userID); err != nil {
		return nil, err
	}

	lessons := dedupeSorted(completedLessons)

	lectures, err := s.lectures.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	progress := 0.0
	if total := len(lectures); total > 0 {
		progress = float64(len(lessons)) / float64(total)
		if progress > 1 {
			progress = 1
		}
	}

	now := time.Now()
	err = s.courses.UpdateEnrollment(ctx, courseID, userID, repository.UpdateEnrollmentInput{
		CompletedLessons: lessons,
		Progress:         progress,
		LastAccessed:     now,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.courses.GetEnrollment(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	view := dto.EnrollmentFromDomain(updated)
	return &view, nil
}

func (s *service) SaveLectureProgress(ctx context.Context, userID, lectureID string, progress float64) error {
	if progress < 0 || progress > 1 {
		return ErrInvalidProgress
	}
	if _, err := s.lectures.GetByID(ctx, lectureID); err != nil {
		return err
	}
	player.NewReporter(s.lectures, userID, lectureID).Report(ctx, progress)
	return nil
}

func (s *service) LectureProgress(ctx context.Context, userID, lectureID string) (*dto.ProgressResponse, error) {
	p, err := s.lectures.GetProgress(ctx, userID, lectureID)
	if err != nil {
		return nil, err
	}
	view := dto.ProgressFromDomain(p)
	return &view, nil
}

func (s *service) SaveStandaloneProgress(ctx context.Context, userID, lectureID string, progress float64) error {
	if progress < 0 || progress > 1 {
		return ErrInvalidProgress
	}
	if _, err := s.standalone.GetByID(ctx, lectureID); err != nil {
		return err
	}
	player.NewReporter(s.standalone, userID, lectureID).Report(ctx, progress)
	return nil
}

func (s *service) StandaloneProgress(ctx context.Context, userID, lectureID string) (*dto.ProgressResponse, error) {
	p, err := s.standalone.GetProgress(ctx, userID, lectureID)
	if err != nil {
		return nil, err
	}
	view := dto.ProgressFromDomain(p)
	return &view, nil
}

// dedupeSorted normaliza el set de lecciones: sin duplicados, sin
// negativos, en orden ascendente. Nunca retorna nil.
func dedupeSorted(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if v < 0 {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
