package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suyogxd/vidtube/internal/domain/entity"
	"github.com/suyogxd/vidtube/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO videos (owner_id, video_url, thumbnail_url, title, description, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, created_at, updated_at
	`, v.OwnerID, v.VideoURL, v.ThumbnailURL, v.Title, v.Description, v.Duration, v.IsPublished)
	return row.Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	v := &entity.Video{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, video_url, thumbnail_url, title, description, duration, views, is_published, created_at, updated_at
		FROM videos
		WHERE id = $1
	`, id)
	if err := row.Scan(&v.ID, &v.OwnerID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE videos SET views = views + 1, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
