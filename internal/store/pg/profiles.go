package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type profileRepo struct {
	pool *pgxpool.Pool
}

const profileCols = `id, full_name, avatar_url, is_allowed, created_at`

func scanProfile(row pgx.Row) (*repository.Profile, error) {
	var p repository.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.IsAllowed, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*repository.Profile, error) {
	const query = `SELECT ` + profileCols + ` FROM profiles WHERE id = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *profileRepo) Create(ctx context.Context, input repository.CreateProfileInput) (*repository.Profile, error) {
	const query = `
		INSERT INTO profiles (id, full_name, avatar_url, is_allowed)
		VALUES ($1, $2, $3, FALSE)
		RETURNING ` + profileCols
	p, err := scanProfile(r.pool.QueryRow(ctx, query, input.ID, input.FullName, input.AvatarURL))
	if err != nil {
		return nil, mapPgError(err)
	}
	return p, nil
}

func (r *profileRepo) Update(ctx context.Context, id string, input repository.UpdateProfileInput) (*repository.Profile, error) {
	const query = `
		UPDATE profiles
		SET full_name  = COALESCE($2, full_name),
		    avatar_url = COALESCE($3, avatar_url)
		WHERE id = $1
		RETURNING ` + profileCols
	return scanProfile(r.pool.QueryRow(ctx, query, id, input.FullName, input.AvatarURL))
}

func (r *profileRepo) SetAllowed(ctx context.Context, id string, allowed bool) (*repository.Profile, error) {
	const query = `
		UPDATE profiles SET is_allowed = $2 WHERE id = $1
		RETURNING ` + profileCols
	return scanProfile(r.pool.QueryRow(ctx, query, id, allowed))
}

func (r *profileRepo) ListByAllowed(ctx context.Context, allowed bool) ([]repository.Profile, error) {
	const query = `
		SELECT ` + profileCols + `
		FROM profiles WHERE is_allowed = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, allowed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Profile
	for rows.Next() {
		var p repository.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.IsAllowed, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
