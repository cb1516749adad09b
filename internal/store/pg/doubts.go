package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type doubtRepo struct {
	pool *pgxpool.Pool
}

const doubtCols = `id, created_at, user_id, title, description, status, course_id, lecture_id`

func scanDoubt(row pgx.Row) (*repository.Doubt, error) {
	var d repository.Doubt
	var status string
	err := row.Scan(&d.ID, &d.CreatedAt, &d.UserID, &d.Title, &d.Description,
		&status, &d.CourseID, &d.LectureID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Status = repository.DoubtStatus(status)
	return &d, nil
}

func (r *doubtRepo) ListByUser(ctx context.Context, userID string) ([]repository.Doubt, error) {
	const query = `
		SELECT ` + doubtCols + `
		FROM doubts WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Doubt
	for rows.Next() {
		d, err := scanDoubt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *doubtRepo) GetByID(ctx context.Context, id string) (*repository.Doubt, error) {
	const query = `SELECT ` + doubtCols + ` FROM doubts WHERE id = $1`
	return scanDoubt(r.pool.QueryRow(ctx, query, id))
}

func (r *doubtRepo) ListReplies(ctx context.Context, doubtID string) ([]repository.DoubtReply, error) {
	const query = `
		SELECT id, created_at, doubt_id, user_id, content, is_teacher
		FROM doubt_replies WHERE doubt_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, doubtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.DoubtReply
	for rows.Next() {
		var rep repository.DoubtReply
		if err := rows.Scan(&rep.ID, &rep.CreatedAt, &rep.DoubtID, &rep.UserID, &rep.Content, &rep.IsTeacher); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *doubtRepo) Create(ctx context.Context, input repository.CreateDoubtInput) (*repository.Doubt, error) {
	const query = `
		INSERT INTO doubts (id, user_id, title, description, status, course_id, lecture_id)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6)
		RETURNING ` + doubtCols
	d, err := scanDoubt(r.pool.QueryRow(ctx, query,
		uuid.NewString(), input.UserID, input.Title, input.Description, input.CourseID, input.LectureID))
	if err != nil {
		return nil, mapPgError(err)
	}
	return d, nil
}

func (r *doubtRepo) CreateReply(ctx context.Context, input repository.CreateReplyInput) (*repository.DoubtReply, error) {
	const query = `
		INSERT INTO doubt_replies (id, doubt_id, user_id, content, is_teacher)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, doubt_id, user_id, content, is_teacher`
	var rep repository.DoubtReply
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(), input.DoubtID, input.UserID, input.Content, input.IsTeacher,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.DoubtID, &rep.UserID, &rep.Content, &rep.IsTeacher)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &rep, nil
}

func (r *doubtRepo) UpdateStatus(ctx context.Context, id string, status repository.DoubtStatus) (*repository.Doubt, error) {
	const query = `
		UPDATE doubts SET status = $2 WHERE id = $1
		RETURNING ` + doubtCols
	return scanDoubt(r.pool.QueryRow(ctx, query, id, string(status)))
}
