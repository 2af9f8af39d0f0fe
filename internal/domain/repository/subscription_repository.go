package repository

import "context"

// SubscriptionRepository manages the directed (subscriber, channel) relation.
// The profile aggregation composes the three read queries; they replace the
// original store-side join pipeline.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscriberID, channelID string) error
	Delete(ctx context.Context, subscriberID, channelID string) error
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID string) (int64, error)
	IsSubscribedBy(ctx context.Context, channelID, subscriberID string) (bool, error)
}
