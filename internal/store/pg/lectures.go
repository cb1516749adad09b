package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type lectureRepo struct {
	pool *pgxpool.Pool
}

const lectureCols = `id, created_at, course_id, title, COALESCE(description, ''),
	video_url, duration, "order", COALESCE(thumbnail_url, '')`

func scanLecture(row pgx.Row) (*repository.Lecture, error) {
	var l repository.Lecture
	err := row.Scan(&l.ID, &l.CreatedAt, &l.CourseID, &l.Title, &l.Description,
		&l.VideoURL, &l.Duration, &l.Order, &l.ThumbnailURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lectureRepo) ListByCourse(ctx context.Context, courseID string) ([]repository.Lecture, error) {
	const query = `
		SELECT ` + lectureCols + `
		FROM lectures WHERE course_id = $1 ORDER BY "order" ASC`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Lecture
	for rows.Next() {
		l, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *lectureRepo) GetByID(ctx context.Context, id string) (*repository.Lecture, error) {
	const query = `SELECT ` + lectureCols + ` FROM lectures WHERE id = $1`
	return scanLecture(r.pool.QueryRow(ctx, query, id))
}

// UpsertProgress pisa el valor anterior sin compararlo: last-write-wins.
func (r *lectureRepo) UpsertProgress(ctx context.Context, input repository.UpsertProgressInput) error {
	const query = `
		INSERT INTO lecture_progress (user_id, lecture_id, progress, last_accessed)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, lecture_id)
		DO UPDATE SET progress = EXCLUDED.progress, last_accessed = EXCLUDED.last_accessed`
	_, err := r.pool.Exec(ctx, query, input.UserID, input.LectureID, input.Progress)
	return err
}

func (r *lectureRepo) GetProgress(ctx context.Context, userID, lectureID string) (*repository.PlaybackProgress, error) {
	const query = `
		SELECT user_id, lecture_id, progress, last_accessed
		FROM lecture_progress WHERE user_id = $1 AND lecture_id = $2`
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
