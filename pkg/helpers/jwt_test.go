package helpers

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, exp, err := m.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("expiry not in the future")
	}
	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("uid = %q, want user-1", claims.UserID)
	}
}

func TestTokensUseSeparateSecrets(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := m.ParseRefreshToken(refresh); err != nil {
		t.Errorf("refresh token rejected by its own parser: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, _, err := m.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	a := NewJWTManager("secret-a", "secret-a", time.Minute, time.Hour)
	b := NewJWTManager("secret-b", "secret-b", time.Minute, time.Hour)

	token, _, err := a.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.ParseAccessToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestConsecutiveTokensDiffer(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	first, _, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Error("back-to-back refresh tokens are identical")
	}
}
