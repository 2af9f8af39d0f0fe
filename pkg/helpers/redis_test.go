package helpers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestIsRedisNil(t *testing.T) {
	if !isRedisNil(redis.Nil) {
		t.Error("redis.Nil not recognized as a cache miss")
	}
	if !isRedisNil(fmt.Errorf("get key: %w", redis.Nil)) {
		t.Error("wrapped redis.Nil not recognized as a cache miss")
	}
	if isRedisNil(errors.New("connection refused")) {
		t.Error("connection error treated as a cache miss")
	}
	if isRedisNil(nil) {
		t.Error("nil error treated as a cache miss")
	}
}
