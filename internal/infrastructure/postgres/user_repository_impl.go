package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suyogxd/vidtube/internal/domain/entity"
	"github.com/suyogxd/vidtube/internal/domain/repository"
)

const uniqueViolation = "23505"

func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, full_name, password_hash, avatar_url, cover_image_url, COALESCE(refresh_token, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Password, &u.AvatarURL,
		&u.CoverImageURL, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, full_name, password_hash, avatar_url, cover_image_url)
		VALUES (lower($1), $2, $3, $4, $5, $6)
		RETURNING id, username, created_at, updated_at
	`, u.Username, u.Email, u.FullName, u.Password, u.AvatarURL, u.CoverImageURL)

	if err := row.Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapPgErr(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = lower($1)`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = lower($1) OR email = $1
	`, identifier))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, full_name = $2, avatar_url = $3, cover_image_url = $4, updated_at = $5
		WHERE id = $6
	`, u.Email, u.FullName, u.AvatarURL, u.CoverImageURL, u.UpdatedAt, u.ID)
	if err != nil {
		return mapPgErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetRefreshToken overwrites the single stored refresh token; an empty token
// clears it (logout).
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET refresh_token = NULLIF($1, ''), updated_at = now() WHERE id = $2
	`, token, userID)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendWatchHistory appends the video to the user's history. The position
// column is an identity, so concurrent appends never collide.
func (r *UserRepository) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2)
	`, userID, videoID)
	return err
}

// WatchHistory expands the stored video ids into video rows with an owner
// summary, preserving insertion order.
func (r *UserRepository) WatchHistory(ctx context.Context, userID string) ([]entity.WatchHistoryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.WatchHistoryItem, 0)
	for rows.Next() {
		var it entity.WatchHistoryItem
		if err := rows.Scan(
			&it.Video.ID, &it.Video.OwnerID, &it.Video.VideoURL, &it.Video.ThumbnailURL,
			&it.Video.Title, &it.Video.Description, &it.Video.Duration, &it.Video.Views,
			&it.Video.IsPublished, &it.Video.CreatedAt, &it.Video.UpdatedAt,
			&it.Owner.ID, &it.Owner.Username, &it.Owner.FullName, &it.Owner.AvatarURL,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
