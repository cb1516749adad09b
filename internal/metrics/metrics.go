// Package metrics define las métricas Prometheus del servicio. Viven en un
// paquete propio para evitar ciclos de import entre HTTP y los services.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal cuenta requests procesadas por método, ruta y status.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration mide la latencia de los requests.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// SignInsTotal cuenta sign-ins completados por resultado.
	SignInsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signins_total",
		Help: "Sign-ins con Google por resultado",
	}, []string{"result"}) // result: ok|denied|error

	// ProgressWritesTotal cuenta upserts de progreso de video.
	ProgressWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "progress_writes_total",
		Help: "Escrituras de progreso de reproducción por resultado",
	}, []string{"result"}) // result: ok|error

	// DoubtsCreatedTotal cuenta dudas nuevas.
	DoubtsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "doubts_created_total",
		Help: "Dudas creadas por estudiantes",
	})

	// EnrollmentsTotal cuenta inscripciones nuevas (no cuenta las idempotentes).
	EnrollmentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollments_total",
		Help: "Inscripciones nuevas a cursos",
	})
)

// Register registra todas las métricas en el registry dado (default si es nil)
// y devuelve el handler para /metrics. Tolera registros duplicados para que
// los tests puedan llamarlo más de una vez.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		SignInsTotal,
		ProgressWritesTotal,
		DoubtsCreatedTotal,
		EnrollmentsTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return promhttp.Handler(), nil
}
