package repository

import "errors"

// ErrDuplicate is returned when a write violates a uniqueness constraint
// (username, email, or an existing subscription pair).
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned when the requested record does not exist. Store
// failures (connection loss, timeouts) are returned as-is, never as this.
var ErrNotFound = errors.New("record not found")
