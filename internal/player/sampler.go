// Package player implementa el muestreo periodico de progreso de video.
//
// El sampler consulta una fuente de reproduccion a intervalo fijo y
// publica la fraccion vista. El reporter persiste esa fraccion por
// (usuario, leccion) con semantica last-write-wins.
package player

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval es el periodo de muestreo por defecto.
const DefaultInterval = 200 * time.Millisecond

// PlaybackSource expone la posicion actual de una reproduccion.
// Duration puede ser cero mientras el medio carga metadata.
type PlaybackSource interface {
	Position() time.Duration
	Duration() time.Duration
}

// ReportFunc recibe la fraccion vista, siempre en [0, 1].
type ReportFunc func(ctx context.Context, fraction float64)

// Sampler consulta la fuente con un ticker explicito. El ciclo de vida
// es manual: Start arranca la goroutine y Stop (o la cancelacion del
// contexto) la termina. Mientras la duracion sea cero o negativa no se
// reporta nada; ahi no hay fraccion que calcular.
type Sampler struct {
	source   PlaybackSource
	report   ReportFunc
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler crea un sampler con el intervalo dado. Un intervalo menor
// o igual a cero cae al default; no tiene sentido muestrear mas rapido
// que unas pocas veces por segundo.
func NewSampler(source PlaybackSource, report ReportFunc, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{source: source, report: report, interval: interval}
}

// Start arranca el muestreo. Llamar Start sobre un sampler ya corriendo
// es un no-op.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sample(ctx)
			}
		}
	}()
}

// Stop detiene el muestreo y espera a que la goroutine termine.
// Es seguro llamarlo varias veces.
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Sampler) sample(ctx context.Context) {
	dur := s.source.Duration()
	if dur <= 0 {
		return
	}
	frac := float64(s.source.Position()) / float64(dur)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	s.report(ctx, frac)
}
