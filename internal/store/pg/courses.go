package pg

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type courseRepo struct {
	pool *pgxpool.Pool
}

const courseCols = `id, created_at, title, instructor, duration, lessons, students,
	COALESCE(description, ''), COALESCE(image_url, ''), curriculum`

func scanCourse(row pgx.Row) (*repository.Course, error) {
	var c repository.Course
	var curriculum []byte
	err := row.Scan(&c.ID, &c.CreatedAt, &c.Title, &c.Instructor, &c.Duration,
		&c.Lessons, &c.Students, &c.Description, &c.ImageURL, &curriculum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(curriculum) > 0 {
		if err := json.Unmarshal(curriculum, &c.Curriculum); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *courseRepo) List(ctx context.Context) ([]repository.Course, error) {
	const query = `SELECT ` + courseCols + ` FROM courses ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*repository.Course, error) {
	const query = `SELECT ` + courseCols + ` FROM courses WHERE id = $1`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

const enrollmentCols = `id, created_at, user_id, course_id, progress, completed_lessons, last_accessed`

func scanEnrollment(row pgx.Row) (*repository.CourseEnrollment, error) {
	var e repository.CourseEnrollment
	var lessons []byte
	err := row.Scan(&e.ID, &e.CreatedAt, &e.UserID, &e.CourseID, &e.Progress, &lessons, &e.LastAccessed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(lessons) > 0 {
		if err := json.Unmarshal(lessons, &e.CompletedLessons); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func (r *courseRepo) ListEnrollments(ctx context.Context, userID string) ([]repository.EnrolledCourse, error) {
	const query = `
		SELECT e.id, e.created_at, e.user_id, e.course_id, e.progress, e.completed_lessons, e.last_accessed,
		       c.id, c.created_at, c.title, c.instructor, c.duration, c.lessons, c.students,
		       COALESCE(c.description, ''), COALESCE(c.image_url, ''), c.curriculum
		FROM course_enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.last_accessed DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.EnrolledCourse
	for rows.Next() {
		var ec repository.EnrolledCourse
		var lessons, curriculum []byte
		err := rows.Scan(
			&ec.Enrollment.ID, &ec.Enrollment.CreatedAt, &ec.Enrollment.UserID, &ec.Enrollment.CourseID,
			&ec.Enrollment.Progress, &lessons, &ec.Enrollment.LastAccessed,
			&ec.Course.ID, &ec.Course.CreatedAt, &ec.Course.Title, &ec.Course.Instructor,
			&ec.Course.Duration, &ec.Course.Lessons, &ec.Course.Students,
			&ec.Course.Description, &ec.Course.ImageURL, &curriculum,
		)
		if err != nil {
			return nil, err
		}
		if len(lessons) > 0 {
			if err := json.Unmarshal(lessons, &ec.Enrollment.CompletedLessons); err != nil {
				return nil, err
			}
		}
		if len(curriculum) > 0 {
			if err := json.Unmarshal(curriculum, &ec.Course.Curriculum); err != nil {
				return nil, err
			}
		}
		out = append(out, ec)
	}
	return out, rows.Err()
}

func (r *courseRepo) GetEnrollment(ctx context.Context, courseID, userID string) (*repository.CourseEnrollment, error) {
	const query = `
		SELECT ` + enrollmentCols + `
		FROM course_enrollments WHERE course_id = $1 AND user_id = $2`
	return scanEnrollment(r.pool.QueryRow(ctx, query, courseID, userID))
}

func (r *courseRepo) CreateEnrollment(ctx context.Context, input repository.CreateEnrollmentInput) (*repository.CourseEnrollment, error) {
	const query = `
		INSERT INTO course_enrollments (id, user_id, course_id, progress, completed_lessons, last_accessed)
		VALUES ($1, $2, $3, 0, '[]'::jsonb, NOW())
		RETURNING ` + enrollmentCols
	e, err := scanEnrollment(r.pool.QueryRow(ctx, query, uuid.NewString(), input.UserID, input.CourseID))
	if err != nil {
		return nil, mapPgError(err)
	}
	return e, nil
}

func (r *courseRepo) UpdateEnrollment(ctx context.Context, courseID, userID string, input repository.UpdateEnrollmentInput) error {
	lessons, err := json.Marshal(input.CompletedLessons)
	if err != nil {
		return err
	}
	const query = `
		UPDATE course_enrollments
		SET completed_lessons = $3, progress = $4, last_accessed = $5
		WHERE course_id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, courseID, userID, lessons, input.Progress, input.LastAccessed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
