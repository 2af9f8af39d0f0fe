package repository

import (
	"context"

	"github.com/suyogxd/vidtube/internal/domain/entity"
)

type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	IncrementViews(ctx context.Context, id string) error
}
