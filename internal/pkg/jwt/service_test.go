package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "a@b.co")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("token type = %s, want access", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token reported as refresh")
	}
}

func TestHMACService_RefreshTokenType(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("refresh token not detected")
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_Garbage(t *testing.T) {
	svc := newTestService()
	_, err := svc.ValidateToken("not-a-token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
