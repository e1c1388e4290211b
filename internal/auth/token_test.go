package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", "wagelift", 15*time.Minute, 24*time.Hour)
}

// TestTokenPairRoundTrip проверяет выпуск и разбор пары токенов.
func TestTokenPairRoundTrip(t *testing.T) {
	manager := newTestManager()
	userID := uuid.New()
	refreshID := uuid.New()

	pair, err := manager.NewTokenPair(userID, refreshID)
	if err != nil {
		t.Fatalf("NewTokenPair: %v", err)
	}

	claims, err := manager.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}

	gotUserID, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("expected user %s, got %s", userID, gotUserID)
	}

	refreshClaims, err := manager.ParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}

	gotRefreshID, err := refreshClaims.TokenID()
	if err != nil {
		t.Fatalf("TokenID: %v", err)
	}
	if gotRefreshID != refreshID {
		t.Fatalf("expected refresh id %s, got %s", refreshID, gotRefreshID)
	}
}

// TestTokenTypeMismatch проверяет, что refresh-токен не проходит как access.
func TestTokenTypeMismatch(t *testing.T) {
	manager := newTestManager()

	pair, err := manager.NewTokenPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("NewTokenPair: %v", err)
	}

	if _, err := manager.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch, got %v", err)
	}
}

// TestExpiredToken проверяет отказ по истекшему токену.
func TestExpiredToken(t *testing.T) {
	manager := newTestManager()
	manager.now = func() time.Time { return time.Now().Add(-time.Hour) }

	pair, err := manager.NewTokenPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("NewTokenPair: %v", err)
	}

	if _, err := manager.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected expired token error")
	}
}

// TestForeignIssuer проверяет отказ по токену чужого издателя.
func TestForeignIssuer(t *testing.T) {
	foreign := NewTokenManager("test-secret", "other-service", 15*time.Minute, 24*time.Hour)

	pair, err := foreign.NewTokenPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("NewTokenPair: %v", err)
	}

	if _, err := newTestManager().ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected issuer validation error")
	}
}

// TestCompareTokenHash проверяет сравнение хэша refresh-токена.
func TestCompareTokenHash(t *testing.T) {
	hash := HashToken("opaque-refresh-token")

	if !CompareTokenHash(hash, "opaque-refresh-token") {
		t.Fatal("expected hash to match token")
	}
	if CompareTokenHash(hash, "different-token") {
		t.Fatal("expected hash mismatch")
	}
}
