package repository

import (
	"context"
	"time"
)

// CarouselImage es un banner del carrusel del home.
type CarouselImage struct {
	ID           string
	CreatedAt    time.Time
	Title        string
	Description  string
	ImageURL     string
	LinkURL      string
	DisplayOrder int
	IsActive     bool
}

// CarouselRepository define operaciones sobre carousel_images.
type CarouselRepository interface {
	// ListActive retorna los banners activos ordenados por display_order.
	ListActive(ctx context.Context) ([]CarouselImage, error)
}
