package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type standaloneRepo struct {
	pool *pgxpool.Pool
}

const standaloneCols = `id, created_at, title, COALESCE(description, ''), video_url,
	COALESCE(thumbnail_url, ''), COALESCE(duration, ''), display_order, is_active`

func scanStandalone(row pgx.Row) (*repository.StandaloneLecture, error) {
	var l repository.StandaloneLecture
	err := row.Scan(&l.ID, &l.CreatedAt, &l.Title, &l.Description, &l.VideoURL,
		&l.ThumbnailURL, &l.Duration, &l.DisplayOrder, &l.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *standaloneRepo) ListActive(ctx context.Context) ([]repository.StandaloneLecture, error) {
	const query = `
		SELECT ` + standaloneCols + `
		FROM standalone_lectures WHERE is_active = TRUE ORDER BY display_order ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.StandaloneLecture
	for rows.Next() {
		l, err := scanStandalone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *standaloneRepo) GetByID(ctx context.Context, id string) (*repository.StandaloneLecture, error) {
	const query = `SELECT ` + standaloneCols + ` FROM standalone_lectures WHERE id = $1`
	return scanStandalone(r.pool.QueryRow(ctx, query, id))
}

func (r *standaloneRepo) UpsertProgress(ctx context.Context, input repository.UpsertProgressInput) error {
	const query = `
		INSERT INTO standalone_lecture_progress (user_id, lecture_id, progress, last_accessed)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, lecture_id)
		DO UPDATE SET progress = EXCLUDED.progress, last_accessed = EXCLUDED.last_accessed`
	_, err := r.pool.Exec(ctx, query, input.UserID, input.LectureID, input.Progress)
	return err
}

func (r *standaloneRepo) GetProgress(ctx context.Context, userID, lectureID string) (*repository.PlaybackProgress, error) {
	const query = `
		SELECT user_id, lecture_id, progress, last_accessed
		FROM standalone_lecture_progress WHERE user_id = $1 AND lecture_id = $2`
	var p repository.PlaybackProgress
	err := r.pool.QueryRow(ctx, query, userID, lectureID).Scan(&p.UserID, &p.LectureID, &p.Progress, &p.LastAccessed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
