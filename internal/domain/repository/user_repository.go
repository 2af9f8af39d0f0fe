package repository

import (
	"context"

	"github.com/suyogxd/vidtube/internal/domain/entity"
)

// UserRepository defines user-store operations, including the user-owned
// watch-history relation.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByUsernameOrEmail resolves a login identifier against either column.
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// SetRefreshToken overwrites the stored refresh token; empty clears it.
	SetRefreshToken(ctx context.Context, userID, token string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	AppendWatchHistory(ctx context.Context, userID, videoID string) error
	// WatchHistory returns the projection in stored insertion order.
	WatchHistory(ctx context.Context, userID string) ([]entity.WatchHistoryItem, error)
}
