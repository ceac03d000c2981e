package utils

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "trainer", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	claims, err := VerifyAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "trainer" {
		t.Errorf("Role = %q, want trainer", claims.Role)
	}
}

func TestAccessTokenValidBeforeExpiry(t *testing.T) {
	// One minute of TTL leaves the token comfortably inside its window.
	tok, err := NewAccessToken(testSecret, 7, "student", 1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, tok.Token); err != nil {
		t.Errorf("token rejected before expiry: %v", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	// A negative TTL puts the expiry in the past without sleeping.
	tok, err := NewAccessToken(testSecret, 7, "student", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = VerifyAccessToken(testSecret, tok.Token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("other-secret", 7, "admin", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = VerifyAccessToken(testSecret, tok.Token)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("err = %v, want ErrTokenBadSignature", err)
	}
}

func TestAccessTokenTamperedSignature(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, "admin", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	raw := []byte(tok.Token)
	last := raw[len(raw)-1]
	if last == 'A' {
		raw[len(raw)-1] = 'B'
	} else {
		raw[len(raw)-1] = 'A'
	}
	if _, err := VerifyAccessToken(testSecret, string(raw)); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestAccessTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := VerifyAccessToken(testSecret, raw); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("VerifyAccessToken(%q) = %v, want ErrTokenMalformed", raw, err)
		}
	}
}

func TestRefreshTokenUnique(t *testing.T) {
	a, err := NewRefreshToken(1)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(1)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens share the same raw value")
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw length = %d, want 96", len(a.Raw))
	}
}

func TestHashRefreshRawStable(t *testing.T) {
	if HashRefreshRaw("abc") != HashRefreshRaw("abc") {
		t.Error("hash of the same input differs")
	}
	if HashRefreshRaw("abc") == HashRefreshRaw("abd") {
		t.Error("hash of different inputs collides")
	}
}
