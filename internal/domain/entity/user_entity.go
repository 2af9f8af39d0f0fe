package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash; RefreshToken holds the single currently
// valid refresh token for the user (empty when logged out).
type User struct {
	ID            string
	Username      string // stored lowercase
	Email         string
	FullName      string
	Password      string
	AvatarURL     string
	CoverImageURL string
	RefreshToken  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnerSummary is the reduced shape of a user embedded in video responses.
type OwnerSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullname"`
	AvatarURL string `json:"avatar_url"`
}

func (u *User) Summary() OwnerSummary {
	return OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, AvatarURL: u.AvatarURL}
}
