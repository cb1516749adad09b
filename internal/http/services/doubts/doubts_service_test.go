package doubts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/doubts"
)

// fakeDoubts es un DoubtRepository en memoria.
type fakeDoubts struct {
	doubts  map[string]*repository.Doubt
	replies map[string][]repository.DoubtReply
	seq     int

	failUpdateStatus bool
}

func newFakeDoubts() *fakeDoubts {
	return &fakeDoubts{
		doubts:  map[string]*repository.Doubt{},
		replies: map[string][]repository.DoubtReply{},
	}
}

func (f *fakeDoubts) ListByUser(_ context.Context, userID string) ([]repository.Doubt, error) {
	var out []repository.Doubt
	for _, d := range f.doubts {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDoubts) GetByID(_ context.Context, id string) (*repository.Doubt, error) {
	d, ok := f.doubts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDoubts) ListReplies(_ context.Context, doubtID string) ([]repository.DoubtReply, error) {
	return f.replies[doubtID], nil
}

func (f *fakeDoubts) Create(_ context.Context, in repository.CreateDoubtInput) (*repository.Doubt, error) {
	f.seq++
	d := &repository.Doubt{
		ID:          fmt.Sprintf("d%d", f.seq),
		CreatedAt:   time.Now(),
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Status:      repository.DoubtPending,
		CourseID:    in.CourseID,
		LectureID:   in.LectureID,
	}
	f.doubts[d.ID] = d
	cp := *d
	return &cp, nil
}

func (f *fakeDoubts) CreateReply(_ context.Context, in repository.CreateReplyInput) (*repository.DoubtReply, error) {
	f.seq++
	r := repository.DoubtReply{
		ID:        fmt.Sprintf("r%d", f.seq),
		CreatedAt: time.Now(),
		DoubtID:   in.DoubtID,
		UserID:    in.UserID,
		Content:   in.Content,
		IsTeacher: in.IsTeacher,
	}
	f.replies[in.DoubtID] = append(f.replies[in.DoubtID], r)
	return &r, nil
}

func (f *fakeDoubts) UpdateStatus(_ context.Context, id string, status repository.DoubtStatus) (*repository.Doubt, error) {
	if f.failUpdateStatus {
		return nil, fmt.Errorf("status write rejected")
	}
	d, ok := f.doubts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d.Status = status
	cp := *d
	return &cp, nil
}

func mustCreate(t *testing.T, s Service, userID, title string) dto.Doubt {
	t.Helper()
	d, err := s.Create(context.Background(), userID, dto.CreateRequest{Title: title})
	require.NoError(t, err)
	return *d
}

func TestCreateStartsPending(t *testing.T) {
	s := NewService(Deps{Doubts: newFakeDoubts()})

	d := mustCreate(t, s, "u1", "  ¿Qué es un goroutine?  ")
	assert.Equal(t, "pending", d.Status)
	assert.Equal(t, "¿Qué es un goroutine?", d.Title)

	_, err := s.Create(context.Background(), "u1", dto.CreateRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleMissing)
}

func TestTeacherReplyAdvancesToAnswered(t *testing.T) {
	repo := newFakeDoubts()
	s := NewService(Deps{Doubts: repo})
	ctx := context.Background()

	d := mustCreate(t, s, "u1", "duda")

	// Una respuesta del propio alumno no mueve el estado.
	_, err := s.Reply(ctx, "u1", d.ID, dto.ReplyRequest{Content: "más contexto"})
	require.NoError(t, err)
	assert.Equal(t, repository.DoubtPending, repo.doubts[d.ID].Status)

	// La primera respuesta docente sí.
	r, err := s.Reply(ctx, "teacher-1", d.ID, dto.ReplyRequest{Content: "se resuelve así", IsTeacher: true})
	require.NoError(t, err)
	assert.True(t, r.IsTeacher)
	assert.Equal(t, repository.DoubtAnswered, repo.doubts[d.ID].Status)

	// Respuestas docentes posteriores lo dejan en answered.
	_, err = s.Reply(ctx, "teacher-2", d.ID, dto.ReplyRequest{Content: "otra opción", IsTeacher: true})
	require.NoError(t, err)
	assert.Equal(t, repository.DoubtAnswered, repo.doubts[d.ID].Status)
}

func TestTeacherReplySurvivesStatusWriteFailure(t *testing.T) {
	repo := newFakeDoubts()
	s := NewService(Deps{Doubts: repo})
	ctx := context.Background()

	d := mustCreate(t, s, "u1", "duda")

	// Si el avance de estado falla, la respuesta igual queda guardada y
	// la duda sigue pending hasta la próxima respuesta docente.
	repo.failUpdateStatus = true
	_, err := s.Reply(ctx, "teacher-1", d.ID, dto.ReplyRequest{Content: "respuesta", IsTeacher: true})
	require.NoError(t, err)
	assert.Len(t, repo.replies[d.ID], 1)
	assert.Equal(t, repository.DoubtPending, repo.doubts[d.ID].Status)

	repo.failUpdateStatus = false
	_, err = s.Reply(ctx, "teacher-1", d.ID, dto.ReplyRequest{Content: "sigo acá", IsTeacher: true})
	require.NoError(t, err)
	assert.Equal(t, repository.DoubtAnswered, repo.doubts[d.ID].Status)
}

func TestReplyAuthorization(t *testing.T) {
	repo := newFakeDoubts()
	s := NewService(Deps{Doubts: repo})
	ctx := context.Background()

	d := mustCreate(t, s, "u1", "duda")

	// Un tercero sin marca docente no ve el hilo.
	_, err := s.Reply(ctx, "u2", d.ID, dto.ReplyRequest{Content: "yo opino"})
	assert.True(t, repository.IsNotFound(err))

	_, err = s.Reply(ctx, "u1", d.ID, dto.ReplyRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrContentMissing)
}

func TestResolveFromPendingAndAnswered(t *testing.T) {
	repo := newFakeDoubts()
	s := NewService(Deps{Doubts: repo})
	ctx := context.Background()

	// Resolver sin respuestas es válido.
	pending := mustCreate(t, s, "u1", "duda sin respuesta")
	got, err := s.Resolve(ctx, "u1", pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Status)

	// Resolver tras una respuesta docente también.
	answered := mustCreate(t, s, "u1", "duda respondida")
	_, err = s.Reply(ctx, "teacher-1", answered.ID, dto.ReplyRequest{Content: "respuesta", IsTeacher: true})
	require.NoError(t, err)
	got, err = s.Resolve(ctx, "u1", answered.ID)
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Status)
}

func TestThreadHidesForeignDoubts(t *testing.T) {
	repo := newFakeDoubts()
	s := NewService(Deps{Doubts: repo})
	ctx := context.Background()

	d := mustCreate(t, s, "u1", "duda")

	_, err := s.Thread(ctx, "u2", d.ID)
	assert.True(t, repository.IsNotFound(err), "una duda ajena se reporta como inexistente")

	_, err = s.Resolve(ctx, "u2", d.ID)
	assert.True(t, repository.IsNotFound(err))

	th, err := s.Thread(ctx, "u1", d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, th.Doubt.ID)
}
