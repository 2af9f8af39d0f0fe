package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/suyogxd/vidtube/config"
	"github.com/suyogxd/vidtube/pkg/helpers"
)

// Seeds a demo channel with a couple of published videos for local testing.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, full_name, password_hash, avatar_url)
		VALUES ('demochannel', 'demo@vidtube.local', 'Demo Channel', $1, 'https://storage.googleapis.com/vidtube-dev/avatars/demo.png')
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=demochannel password=%s\n", id, password)

	videos := []struct {
		title, url, thumb string
		duration          float64
	}{
		{"Getting started", "https://storage.googleapis.com/vidtube-dev/videos/intro.mp4", "https://storage.googleapis.com/vidtube-dev/thumbnails/intro.jpg", 92.5},
		{"Second upload", "https://storage.googleapis.com/vidtube-dev/videos/second.mp4", "https://storage.googleapis.com/vidtube-dev/thumbnails/second.jpg", 311.0},
	}
	for _, v := range videos {
		if _, err := db.Exec(`
			INSERT INTO videos (owner_id, video_url, thumbnail_url, title, description, duration, is_published)
			VALUES ($1, $2, $3, $4, '', $5, TRUE)
			ON CONFLICT DO NOTHING
		`, id, v.url, v.thumb, v.title, v.duration); err != nil {
			log.Fatalf("failed to seed video %q: %v", v.title, err)
		}
	}
	fmt.Println("seeded demo videos")
}
