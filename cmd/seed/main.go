// Seed de datos de demo: cursos con sus clases, lectures sueltas y
// banners del carrusel. Idempotente vía ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/aditya1111/learnhub/internal/config"
	"github.com/aditya1111/learnhub/internal/domain/repository"
)

type seedLecture struct {
	Title       string
	Description string
	VideoURL    string
	Duration    string
}

type seedCourse struct {
	ID          string
	Title       string
	Instructor  string
	Duration    string
	Lessons     string
	Students    string
	Description string
	ImageURL    string
	Curriculum  []repository.CurriculumItem
	Lectures    []seedLecture
}

var courses = []seedCourse{
	{
		ID:          "course-go-backend",
		Title:       "Backend con Go",
		Instructor:  "M. Herrera",
		Duration:    "12h",
		Lessons:     "24 lessons",
		Students:    "1.2k",
		Description: "APIs HTTP, persistencia y deploy con Go.",
		ImageURL:    "https://cdn.example.com/courses/go-backend.jpg",
		Curriculum: []repository.CurriculumItem{
			{Title: "Intro y setup", Duration: "20m", Type: "video"},
			{Title: "HTTP y routing", Duration: "45m", Type: "video"},
			{Title: "Persistencia con Postgres", Duration: "60m", Type: "video"},
		},
		Lectures: []seedLecture{
			{Title: "Intro y setup", Description: "Herramientas y primer servidor.", VideoURL: "https://cdn.example.com/v/go-01.mp4", Duration: "20:15"},
			{Title: "HTTP y routing", Description: "Handlers, middlewares y routers.", VideoURL: "https://cdn.example.com/v/go-02.mp4", Duration: "44:30"},
			{Title: "Persistencia con Postgres", Description: "pgx, pools y migraciones.", VideoURL: "https://cdn.example.com/v/go-03.mp4", Duration: "58:02"},
		},
	},
	{
		ID:          "course-sql-basics",
		Title:       "SQL desde cero",
		Instructor:  "L. Quiroga",
		Duration:    "8h",
		Lessons:     "16 lessons",
		Students:    "3.4k",
		Description: "Modelado, consultas y performance básica.",
		ImageURL:    "https://cdn.example.com/courses/sql-basics.jpg",
		Curriculum: []repository.CurriculumItem{
			{Title: "Selects y filtros", Duration: "30m", Type: "video"},
			{Title: "Joins", Duration: "40m", Type: "video"},
		},
		Lectures: []seedLecture{
			{Title: "Selects y filtros", Description: "La base de toda consulta.", VideoURL: "https://cdn.example.com/v/sql-01.mp4", Duration: "29:10"},
			{Title: "Joins", Description: "Inner, left y cuándo usar cada uno.", VideoURL: "https://cdn.example.com/v/sql-02.mp4", Duration: "41:00"},
		},
	},
}

type seedStandalone struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	DisplayOrder int
}

var standalone = []seedStandalone{
	{Title: "Cómo estudiar con la plataforma", Description: "Tour de cinco minutos.", VideoURL: "https://cdn.example.com/v/tour.mp4", ThumbnailURL: "https://cdn.example.com/t/tour.jpg", Duration: "05:12", DisplayOrder: 1},
	{Title: "Charla: carreras en backend", Description: "Sesión grabada con invitados.", VideoURL: "https://cdn.example.com/v/charla.mp4", ThumbnailURL: "https://cdn.example.com/t/charla.jpg", Duration: "48:00", DisplayOrder: 2},
}

type seedBanner struct {
	Title        string
	Description  string
	ImageURL     string
	LinkURL      string
	DisplayOrder int
}

var banners = []seedBanner{
	{Title: "Nuevo curso de Go", Description: "Ya disponible", ImageURL: "https://cdn.example.com/b/go.jpg", LinkURL: "/courses/course-go-backend", DisplayOrder: 1},
	{Title: "Clases en vivo", Description: "Todos los jueves", ImageURL: "https://cdn.example.com/b/live.jpg", DisplayOrder: 2},
}

func main() {
	configPath := flag.String("config", "configs/config.example.yaml", "Path to YAML config")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	for _, c := range courses {
		curriculum, err := json.Marshal(c.Curriculum)
		if err != nil {
			log.Fatalf("marshal curriculum: %v", err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO courses (id, title, instructor, duration, lessons, students, description, image_url, curriculum)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
			ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Title, c.Instructor, c.Duration, c.Lessons, c.Students, c.Description, c.ImageURL, string(curriculum))
		if err != nil {
			log.Fatalf("insert course %s: %v", c.ID, err)
		}

		for i, l := range c.Lectures {
			_, err = pool.Exec(ctx, `
				INSERT INTO lectures (id, course_id, title, description, video_url, duration, "order")
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO NOTHING`,
				fmt.Sprintf("%s-lec-%02d", c.ID, i+1), c.ID, l.Title, l.Description, l.VideoURL, l.Duration, i+1)
			if err != nil {
				log.Fatalf("insert lecture %q: %v", l.Title, err)
			}
		}
		log.Printf("seeded course %s (%d lectures)", c.ID, len(c.Lectures))
	}

	for i, s := range standalone {
		_, err = pool.Exec(ctx, `
			INSERT INTO standalone_lectures (id, title, description, video_url, thumbnail_url, duration, display_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			ON CONFLICT (id) DO NOTHING`,
			fmt.Sprintf("standalone-%02d", i+1), s.Title, s.Description, s.VideoURL, s.ThumbnailURL, s.Duration, s.DisplayOrder)
		if err != nil {
			log.Fatalf("insert standalone %q: %v", s.Title, err)
		}
	}
	log.Printf("seeded %d standalone lectures", len(standalone))

	for i, b := range banners {
		_, err = pool.Exec(ctx, `
			INSERT INTO carousel_images (id, title, description, image_url, link_url, display_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			ON CONFLICT (id) DO NOTHING`,
			fmt.Sprintf("banner-%02d", i+1), b.Title, b.Description, b.ImageURL, b.LinkURL, b.DisplayOrder)
		if err != nil {
			log.Fatalf("insert banner %q: %v", b.Title, err)
		}
	}
	log.Printf("seeded %d carousel banners", len(banners))
}
