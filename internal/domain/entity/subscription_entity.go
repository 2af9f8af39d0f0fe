package entity

import "time"

// Subscription is a directed follow edge: SubscriberID follows ChannelID.
// The (subscriber, channel) pair is unique.
type Subscription struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}
