package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suyogxd/vidtube/internal/domain/repository"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscriberID, channelID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
	`, subscriberID, channelID)
	return mapPgErr(err)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
	`, subscriberID, channelID)
	return err
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1
	`, channelID).Scan(&n)
	return n, err
}

func (r *SubscriptionRepository) CountSubscriptions(ctx context.Context, subscriberID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1
	`, subscriberID).Scan(&n)
	return n, err
}

func (r *SubscriptionRepository) IsSubscribedBy(ctx context.Context, channelID, subscriberID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2
		)
	`, channelID, subscriberID).Scan(&exists)
	return exists, err
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
