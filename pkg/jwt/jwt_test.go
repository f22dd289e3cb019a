package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/colson89/ambulance-planning-sub001/config"
)

func testManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-at-least-32-characters!!",
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 30 * 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("u1", "admin", "st1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "admin" || claims.StationID != "st1" {
		t.Errorf("claims round-trip mismatch: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("token must carry a jti")
	}
	if claims.Issuer != "ambuplan" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestRefreshTokenTTL(t *testing.T) {
	m := testManager(15 * time.Minute)

	short, err := m.GenerateRefreshToken("u1", "ambulancier", "st1", false)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	long, err := m.GenerateRefreshToken("u1", "ambulancier", "st1", true)
	if err != nil {
		t.Fatalf("GenerateRefreshToken remember: %v", err)
	}

	shortClaims, err := m.ParseToken(short)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	longClaims, err := m.ParseToken(long)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if shortClaims.TokenType != "refresh" || longClaims.TokenType != "refresh" {
		t.Error("expected refresh token type")
	}
	if !longClaims.ExpiresAt.After(shortClaims.ExpiresAt.Time) {
		t.Error("remember-me must extend the refresh TTL")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	other := testManager(15 * time.Minute)
	other.secret = []byte("a-completely-different-signing-key!!")

	token, err := m.GenerateAccessToken("u1", "admin", "st1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateAccessToken("u1", "admin", "st1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseGarbageToken(t *testing.T) {
	m := testManager(15 * time.Minute)
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
