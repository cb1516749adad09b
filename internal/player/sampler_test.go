package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type fakeSource struct {
	mu       sync.Mutex
	position time.Duration
	duration time.Duration
}

func (f *fakeSource) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeSource) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeSource) set(pos, dur time.Duration) {
	f.mu.Lock()
	f.position, f.duration = pos, dur
	f.mu.Unlock()
}

type captureReports struct {
	mu    sync.Mutex
	fracs []float64
}

func (c *captureReports) report(_ context.Context, f float64) {
	c.mu.Lock()
	c.fracs = append(c.fracs, f)
	c.mu.Unlock()
}

func (c *captureReports) snapshot() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, len(c.fracs))
	copy(out, c.fracs)
	return out
}

func TestSamplerSkipsWhileDurationUnknown(t *testing.T) {
	src := &fakeSource{}
	src.set(30*time.Second, 0)
	got := &captureReports{}

	s := NewSampler(src, got.report, 5*time.Millisecond)
	s.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	assert.Empty(t, got.snapshot(), "sin duracion no hay fraccion que reportar")
}

func TestSamplerReportsFraction(t *testing.T) {
	src := &fakeSource{}
	src.set(30*time.Second, 120*time.Second)
	got := &captureReports{}

	s := NewSampler(src, got.report, 5*time.Millisecond)
	s.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	fracs := got.snapshot()
	require.NotEmpty(t, fracs)
	for _, f := range fracs {
		assert.InDelta(t, 0.25, f, 1e-9)
	}
}

func TestSamplerClampsFraction(t *testing.T) {
	src := &fakeSource{}
	src.set(150*time.Second, 120*time.Second)
	got := &captureReports{}

	s := NewSampler(src, got.report, 5*time.Millisecond)
	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	fracs := got.snapshot()
	require.NotEmpty(t, fracs)
	for _, f := range fracs {
		assert.Equal(t, 1.0, f)
	}
}

func TestSamplerStopIsIdempotent(t *testing.T) {
	src := &fakeSource{}
	s := NewSampler(src, func(context.Context, float64) {}, 5*time.Millisecond)
	s.Start(context.Background())
	s.Stop()
	s.Stop()
	// Un nuevo Start tras Stop vuelve a muestrear.
	src.set(time.Second, 2*time.Second)
	got := &captureReports{}
	s2 := NewSampler(src, got.report, 5*time.Millisecond)
	s2.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s2.Stop()
	assert.NotEmpty(t, got.snapshot())
}

type fakeProgressWriter struct {
	mu     sync.Mutex
	writes []repository.UpsertProgressInput
	err    error
}

func (f *fakeProgressWriter) UpsertProgress(_ context.Context, in repository.UpsertProgressInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, in)
	return nil
}

func TestReporterWritesProgress(t *testing.T) {
	w := &fakeProgressWriter{}
	r := NewReporter(w, "user-1", "lec-1")

	r.Report(context.Background(), 0.3)
	r.Report(context.Background(), 0.1)

	require.Len(t, w.writes, 2)
	assert.Equal(t, 0.3, w.writes[0].Progress)
	assert.Equal(t, 0.1, w.writes[1].Progress, "un rebobinado pisa el valor anterior")
	assert.Equal(t, "user-1", w.writes[0].UserID)
	assert.Equal(t, "lec-1", w.writes[0].LectureID)
}

func TestReporterSkipsWithoutIdentity(t *testing.T) {
	w := &fakeProgressWriter{}
	r := NewReporter(w, "", "lec-1")

	r.Report(context.Background(), 0.5)
	assert.Empty(t, w.writes)
}

func TestReporterDropsWriteErrors(t *testing.T) {
	w := &fakeProgressWriter{err: errors.New("db down")}
	r := NewReporter(w, "user-1", "lec-1")

	assert.NotPanics(t, func() {
		r.Report(context.Background(), 0.5)
	})
}
