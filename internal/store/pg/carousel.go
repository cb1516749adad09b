package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type carouselRepo struct {
	pool *pgxpool.Pool
}

func (r *carouselRepo) ListActive(ctx context.Context) ([]repository.CarouselImage, error) {
	const query = `
		SELECT id, created_at, COALESCE(title, ''), COALESCE(description, ''),
		       image_url, COALESCE(link_url, ''), display_order, is_active
		FROM carousel_images WHERE is_active = TRUE ORDER BY display_order ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.CarouselImage
	for rows.Next() {
		var img repository.CarouselImage
		if err := rows.Scan(&img.ID, &img.CreatedAt, &img.Title, &img.Description,
			&img.ImageURL, &img.LinkURL, &img.DisplayOrder, &img.IsActive); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}
