package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	secret := "test-secret"
	at, err := NewAccessToken(secret, 42, "mod@example.com", "moderator", 50)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token string")
	}

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type %T", parsed.Claims)
	}
	if claims["id"] != "42" {
		t.Errorf("id claim = %v, want \"42\" (decimal string)", claims["id"])
	}
	if claims["email"] != "mod@example.com" || claims["role"] != "moderator" {
		t.Errorf("principal claims = %v / %v", claims["email"], claims["role"])
	}

	wantExp := time.Now().UTC().Add(50 * time.Hour)
	if at.Exp.Before(wantExp.Add(-time.Minute)) || at.Exp.After(wantExp.Add(time.Minute)) {
		t.Errorf("expiry %v not within a minute of %v", at.Exp, wantExp)
	}
}

func TestAccessTokenRejectedWithWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right-secret", 1, "a@b.c", "admin", 1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := "test-secret"
	at, err := NewAccessToken(secret, 1, "a@b.c", "admin", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err == nil {
		t.Fatal("expired token verified")
	}
}

func TestFormatAndParseID(t *testing.T) {
	for _, id := range []uint64{0, 1, 42, 9007199254740993, ^uint64(0)} {
		s := FormatID(id)
		back, err := ParseID(s)
		if err != nil {
			t.Fatalf("ParseID(%q): %v", s, err)
		}
		if back != id {
			t.Fatalf("round trip %d -> %q -> %d", id, s, back)
		}
	}
	if _, err := ParseID("abc"); err == nil {
		t.Fatal("ParseID accepted non-numeric input")
	}
	if _, err := ParseID("-1"); err == nil {
		t.Fatal("ParseID accepted negative input")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plain text")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
