// Package courses expone el catálogo, las inscripciones y el progreso.
package courses

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/courses"
	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/helpers"
	"github.com/aditya1111/learnhub/internal/http/middlewares"
	svc "github.com/aditya1111/learnhub/internal/http/services/courses"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Controller maneja las rutas de /v1/courses y de progreso.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// List maneja GET /v1/courses.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := c.service.List(ctx)
	if err != nil {
		logger.From(ctx).Error("no se pudo listar cursos",
			logger.Layer("controller"), logger.Op("Courses.List"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// Get maneja GET /v1/courses/{courseID}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID := chi.URLParam(r, "courseID")

	course, err := c.service.Get(ctx, courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrCourseNotFound)
			return
		}
		logger.From(ctx).Error("no se pudo leer el curso",
			logger.Layer("controller"), logger.Op("Courses.Get"),
			logger.CourseID(courseID), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, course)
}

// Lectures maneja GET /v1/courses/{courseID}/lectures.
func (c *Controller) Lectures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID := chi.URLParam(r, "courseID")

	list, err := c.service.Lectures(ctx, courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrCourseNotFound)
			return
		}
		logger.From(ctx).Error("no se pudieron listar las clases",
			logger.Layer("controller"), logger.Op("Courses.Lectures"),
			logger.CourseID(courseID), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// Enroll maneja POST /v1/courses/{courseID}/enroll.
func (c *Controller) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID := chi.URLParam(r, "courseID")

	enrollment, err := c.service.Enroll(ctx, middlewares.GetUserID(ctx), courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrCourseNotFound)
			return
		}
		logger.From(ctx).Error("no se pudo inscribir",
			logger.Layer("controller"), logger.Op("Courses.Enroll"),
			logger.CourseID(courseID), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, enrollment)
}

// Enrolled maneja GET /v1/courses/enrolled.
func (c *Controller) Enrolled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := c.service.Enrolled(ctx, middlewares.GetUserID(ctx))
	if err != nil {
		logger.From(ctx).Error("no se pudieron listar las inscripciones",
			logger.Layer("controller"), logger.Op("Courses.Enrolled"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// Enrollment maneja GET /v1/courses/{courseID}/enrollment.
func (c *Controller) Enrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID := chi.URLParam(r, "courseID")

	enrollment, err := c.service.Enrollment(ctx, middlewares.GetUserID(ctx), courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("not enrolled"))
			return
		}
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, enrollment)
}

// UpdateEnrollment maneja PATCH /v1/courses/{courseID}/enrollment.
func (c *Controller) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID := chi.URLParam(r, "courseID")

	var req dto.UpdateEnrollmentRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	enrollment, err := c.service.UpdateEnrollment(ctx, middlewares.GetUserID(ctx), courseID, req.CompletedLessons)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("not enrolled"))
			return
		}
		logger.From(ctx).Error("no se pudo actualizar la inscripción",
			logger.Layer("controller"), logger.Op("Courses.UpdateEnrollment"),
			logger.CourseID(courseID), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, enrollment)
}

// SaveLectureProgress maneja PUT /v1/lectures/{lectureID}/progress.
func (c *Controller) SaveLectureProgress(w http.ResponseWriter, r *http.Request) {
	c.saveProgress(w, r, c.service.SaveLectureProgress)
}

// LectureProgress maneja GET /v1/lectures/{lectureID}/progress.
func (c *Controller) LectureProgress(w http.ResponseWriter, r *http.Request) {
	c.getProgress(w, r, c.service.LectureProgress)
}

// SaveStandaloneProgress maneja PUT /v1/standalone-lectures/{lectureID}/progress.
func (c *Controller) SaveStandaloneProgress(w http.ResponseWriter, r *http.Request) {
	c.saveProgress(w, r, c.service.SaveStandaloneProgress)
}

// StandaloneProgress maneja GET /v1/standalone-lectures/{lectureID}/progress.
func (c *Controller) StandaloneProgress(w http.ResponseWriter, r *http.Request) {
	c.getProgress(w, r, c.service.StandaloneProgress)
}

func (c *Controller) saveProgress(w http.ResponseWriter, r *http.Request, save func(ctx context.Context, userID, lectureID string, progress float64) error) {
	ctx := r.Context()
	lectureID := chi.URLParam(r, "lectureID")

	var req dto.ProgressRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	err := save(ctx, middlewares.GetUserID(ctx), lectureID, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrInvalidProgress):
			httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("progress must be between 0 and 1"))
		case repository.IsNotFound(err):
			httperrors.WriteError(w, httperrors.ErrLectureNotFound)
		default:
			logger.From(ctx).Error("no se pudo guardar el progreso",
				logger.Layer("controller"), logger.Op("Courses.SaveProgress"),
				logger.LectureID(lectureID), logger.Err(err))
			httperrors.WriteError(w, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) getProgress(w http.ResponseWriter, r *http.Request, get func(ctx context.Context, userID, lectureID string) (*dto.ProgressResponse, error)) {
	ctx := r.Context()
	lectureID := chi.URLParam(r, "lectureID")

	progress, err := get(ctx, middlewares.GetUserID(ctx), lectureID)
	if err != nil {
		if repository.IsNotFound(err) {
			// Nunca se reportó progreso: fracción cero, no 404.
			helpers.WriteJSON(w, http.StatusOK, dto.ProgressResponse{
				LectureID: lectureID,
				Progress:  0,
			})
			return
		}
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, progress)
}
