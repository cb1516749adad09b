// Package router arma el árbol de rutas HTTP del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aditya1111/learnhub/internal/auth/gate"
	adminctl "github.com/aditya1111/learnhub/internal/http/controllers/admin"
	authctl "github.com/aditya1111/learnhub/internal/http/controllers/auth"
	coursesctl "github.com/aditya1111/learnhub/internal/http/controllers/courses"
	doubtsctl "github.com/aditya1111/learnhub/internal/http/controllers/doubts"
	healthctl "github.com/aditya1111/learnhub/internal/http/controllers/health"
	homectl "github.com/aditya1111/learnhub/internal/http/controllers/home"
	profilectl "github.com/aditya1111/learnhub/internal/http/controllers/profile"
	httperrors "github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/http/middlewares"
	jwtx "github.com/aditya1111/learnhub/internal/jwt"
	"github.com/aditya1111/learnhub/internal/rate"
)

// Deps agrupa todo lo que el router necesita para montar las rutas.
type Deps struct {
	Auth    *authctl.Controller
	Profile *profilectl.Controller
	Home    *homectl.Controller
	Courses *coursesctl.Controller
	Doubts  *doubtsctl.Controller
	Admin   *adminctl.Controller
	Health  *healthctl.Controller

	Issuer      *jwtx.Issuer
	Gate        *gate.Gate
	AdminAPIKey string
	// AuthLimiter limita los endpoints de auth por IP. Nil lo apaga.
	AuthLimiter rate.Limiter

	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
}

// New construye el router con la cadena de middlewares completa.
//
// Capas de acceso:
//   - públicas: health, metrics, auth.
//   - autenticadas: /v1/me y /v1/auth/status (la sala de espera necesita
//     poder consultar su propio estado).
//   - admitidas: todo el contenido (home, courses, lectures, doubts).
//   - operador: /v1/admin con API key.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.WithRecover())
	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithMetrics())
	r.Use(middlewares.WithSecurityHeaders())
	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.WithCORS(deps.CORSAllowedOrigins))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", deps.Health.Live)
	r.Get("/readyz", deps.Health.Ready)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	requireAuth := middlewares.RequireAuth(deps.Issuer)
	requireApproved := middlewares.RequireApproved(deps.Gate)

	r.Route("/v1", func(r chi.Router) {
		// Autenticación: sin tokens, sin cache y con rate limit.
		r.Group(func(r chi.Router) {
			r.Use(middlewares.WithNoStore())
			r.Use(middlewares.WithRateLimit(deps.AuthLimiter))
			r.Get("/auth/google/url", deps.Auth.URL)
			r.Post("/auth/google", deps.Auth.SignIn)
			r.Post("/auth/refresh", deps.Auth.Refresh)
			r.Post("/auth/signout", deps.Auth.SignOut)
		})

		// Con identidad pero sin exigir admisión.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.With(middlewares.WithNoStore()).Get("/auth/status", deps.Auth.Status)
			r.Get("/me", deps.Profile.Me)
			r.Patch("/me", deps.Profile.Update)
		})

		// Contenido: identidad + admisión.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireApproved)

			r.Get("/home", deps.Home.Home)
			r.Get("/home/carousel", deps.Home.Carousel)
			r.Get("/home/lectures", deps.Home.Lectures)

			r.Get("/courses", deps.Courses.List)
			r.Get("/courses/enrolled", deps.Courses.Enrolled)
			r.Get("/courses/{courseID}", deps.Courses.Get)
			r.Get("/courses/{courseID}/lectures", deps.Courses.Lectures)
			r.Post("/courses/{courseID}/enroll", deps.Courses.Enroll)
			r.Get("/courses/{courseID}/enrollment", deps.Courses.Enrollment)
			r.Patch("/courses/{courseID}/enrollment", deps.Courses.UpdateEnrollment)

			r.Put("/lectures/{lectureID}/progress", deps.Courses.SaveLectureProgress)
			r.Get("/lectures/{lectureID}/progress", deps.Courses.LectureProgress)
			r.Put("/standalone-lectures/{lectureID}/progress", deps.Courses.SaveStandaloneProgress)
			r.Get("/standalone-lectures/{lectureID}/progress", deps.Courses.StandaloneProgress)

			r.Get("/doubts", deps.Doubts.List)
			r.Post("/doubts", deps.Doubts.Create)
			r.Get("/doubts/{doubtID}", deps.Doubts.Thread)
			r.Post("/doubts/{doubtID}/replies", deps.Doubts.Reply)
			r.Post("/doubts/{doubtID}/resolve", deps.Doubts.Resolve)
		})

		// Operador.
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireAdminKey(deps.AdminAPIKey))
			r.Get("/admin/profiles", deps.Admin.ListProfiles)
			r.Put("/admin/profiles/{userID}/allowed", deps.Admin.SetAllowed)
		})
	})

	return r
}
