package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrChannelNotFound    = errors.New("channel does not exist")
	ErrVideoNotFound      = errors.New("video not found")
	ErrAlreadyExists      = errors.New("user with email or username already exists")
	ErrTokenExpired       = errors.New("refresh token is expired or used")
	ErrSelfSubscription   = errors.New("cannot subscribe to your own channel")
	ErrUploadFailed       = errors.New("media upload failed")
)
