package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGameTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateGameToken("game-42")
	if err != nil {
		t.Fatalf("GenerateGameToken failed: %v", err)
	}
	claims, err := issuer.ValidateGameToken(token)
	if err != nil {
		t.Fatalf("ValidateGameToken failed: %v", err)
	}
	if claims.GameID != "game-42" {
		t.Fatalf("expected game-42, got %q", claims.GameID)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestGameTokenRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).GenerateGameToken("g")
	if err != nil {
		t.Fatalf("GenerateGameToken failed: %v", err)
	}
	if _, err := NewTokenIssuer("two", time.Hour).ValidateGameToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGameTokenExpires(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)
	token, err := issuer.GenerateGameToken("g")
	if err != nil {
		t.Fatalf("GenerateGameToken failed: %v", err)
	}
	if _, err := issuer.ValidateGameToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestGameTokenRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	if _, err := issuer.ValidateGameToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
