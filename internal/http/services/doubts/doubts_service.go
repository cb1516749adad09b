// Package doubts implementa el módulo de dudas: hilos de preguntas con
// respuestas y un ciclo de vida pending → answered → resolved.
package doubts

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/doubts"
	"github.com/aditya1111/learnhub/internal/metrics"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Errores del servicio.
var (
	ErrTitleMissing   = fmt.Errorf("title is required")
	ErrContentMissing = fmt.Errorf("content is required")
)

// Service define las operaciones de dudas.
type Service interface {
	// List retorna las dudas del usuario, más recientes primero.
	List(ctx context.Context, userID string) ([]dto.Doubt, error)

	// Thread retorna una duda del usuario con su hilo completo.
	Thread(ctx context.Context, userID, doubtID string) (*dto.Thread, error)

	// Create crea una duda en estado pending.
	Create(ctx context.Context, userID string, req dto.CreateRequest) (*dto.Doubt, error)

	// Reply agrega una respuesta. La primera respuesta marcada como de
	// docente avanza la duda de pending a answered.
	Reply(ctx context.Context, userID, doubtID string, req dto.ReplyRequest) (*dto.Reply, error)

	// Resolve marca la duda como resuelta, desde pending o answered.
	Resolve(ctx context.Context, userID, doubtID string) (*dto.Doubt, error)
}

// Deps contiene las dependencias del servicio.
type Deps struct {
	Doubts repository.DoubtRepository
}

type service struct {
	doubts repository.DoubtRepository
}

func NewService(deps Deps) Service {
	return &service{doubts: deps.Doubts}
}

func (s *service) List(ctx context.Context, userID string) ([]dto.Doubt, error) {
	list, err := s.doubts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ListFromDomain(list), nil
}

// ownedDoubt busca la duda y verifica que pertenezca al usuario.
// Una duda ajena se reporta como inexistente, no como prohibida.
func (s *service) ownedDoubt(ctx context.Context, userID, doubtID string) (*repository.Doubt, error) {
	d, err := s.doubts.GetByID(ctx, doubtID)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (s *service) Thread(ctx context.Context, userID, doubtID string) (*dto.Thread, error) {
	d, err := s.ownedDoubt(ctx, userID, doubtID)
	if err != nil {
		return nil, err
	}
	replies, err := s.doubts.ListReplies(ctx, doubtID)
	if err != nil {
		return nil, err
	}
	return &dto.Thread{
		Doubt:   dto.FromDomain(d),
		Replies: dto.RepliesFromDomain(replies),
	}, nil
}

func (s *service) Create(ctx context.Context, userID string, req dto.CreateRequest) (*dto.Doubt, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleMissing
	}

	d, err := s.doubts.Create(ctx, repository.CreateDoubtInput{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		CourseID:    req.CourseID,
		LectureID:   req.LectureID,
	})
	if err != nil {
		return nil, err
	}

	metrics.DoubtsCreatedTotal.Inc()
	logger.From(ctx).Info("duda creada",
		logger.Layer("service"), logger.Component("doubts"),
		logger.UserID(userID), logger.DoubtID(d.ID))
	view := dto.FromDomain(d)
	return &view, nil
}

func (s *service) Reply(ctx context.Context, userID, doubtID string, req dto.ReplyRequest) (*dto.Reply, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentMissing
	}

	d, err := s.doubts.GetByID(ctx, doubtID)
	if err != nil {
		return nil, err
	}
	// El dueño siempre puede responder en su hilo; terceros solo como
	// docentes. La marca is_teacher viene del caller tal cual.
	if d.UserID != userID && !req.IsTeacher {
		return nil, repository.ErrNotFound
	}

	reply, err := s.doubts.CreateReply(ctx, repository.CreateReplyInput{
		DoubtID:   doubtID,
		UserID:    userID,
		Content:   content,
		IsTeacher: req.IsTeacher,
	})
	if err != nil {
		return nil, err
	}

	// La primera respuesta docente avanza el estado. Es una segunda
	// escritura separada: si falla queda la respuesta sin el avance, y
	// la siguiente respuesta docente lo completa.
	if req.IsTeacher && d.Status == repository.DoubtPending {
		if _, err := s.doubts.UpdateStatus(ctx, doubtID, repository.DoubtAnswered); err != nil {
			logger.From(ctx).Warn("no se pudo avanzar la duda a answered",
				logger.Layer("service"), logger.Component("doubts"),
				logger.DoubtID(doubtID), logger.Err(err))
		}
	}

	views := dto.RepliesFromDomain([]repository.DoubtReply{*reply})
	return &views[0], nil
}

func (s *service) Resolve(ctx context.Context, userID, doubtID string) (*dto.Doubt, error) {
	if _, err := s.ownedDoubt(ctx, userID, doubtID); err != nil {
		return nil, err
	}

	// Resolved se setea sin mirar el estado actual: resolver una duda
	// pending sin respuestas también es válido.
	d, err := s.doubts.UpdateStatus(ctx, doubtID, repository.DoubtResolved)
	if err != nil {
		return nil, err
	}
	view := dto.FromDomain(d)
	return &view, nil
}
