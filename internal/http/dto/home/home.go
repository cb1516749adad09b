// Package home contiene los DTOs de la pantalla principal.
package home

import "github.com/aditya1111/learnhub/internal/domain/repository"

// CarouselImage es un banner del carrusel.
type CarouselImage struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url"`
	LinkURL      string `json:"link_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// Lecture es una clase suelta de la sección de lectures.
type Lecture struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     string `json:"duration,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// Response agrupa el contenido del home.
type Response struct {
	Carousel []CarouselImage `json:"carousel"`
	Lectures []Lecture       `json:"lectures"`
}

// CarouselFromDomain convierte los banners de dominio.
func CarouselFromDomain(in []repository.CarouselImage) []CarouselImage {
	out := make([]CarouselImage, 0, len(in))
	for _, c := range in {
		out = append(out, CarouselImage{
			ID:           c.ID,
			Title:        c.Title,
			Description:  c.Description,
			ImageURL:     c.ImageURL,
			LinkURL:      c.LinkURL,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return out
}

// LecturesFromDomain convierte las lectures sueltas de dominio.
func LecturesFromDomain(in []repository.StandaloneLecture) []Lecture {
	out := make([]Lecture, 0, len(in))
	for _, l := range in {
		out = append(out, Lecture{
			ID:           l.ID,
			Title:        l.Title,
			Description:  l.Description,
			VideoURL:     l.VideoURL,
			ThumbnailURL: l.ThumbnailURL,
			Duration:     l.Duration,
			DisplayOrder: l.DisplayOrder,
		})
	}
	return out
}
