package entity

import "time"

type Video struct {
	ID           string
	OwnerID      string
	VideoURL     string
	ThumbnailURL string
	Title        string
	Description  string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WatchHistoryItem is one entry of a user's watch-history projection:
// the video plus a reduced owner record, in stored watch order.
type WatchHistoryItem struct {
	Video Video
	Owner OwnerSummary
}
