package utils

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "admin@fyyur.test", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if tok.Exp.Before(time.Now().Add(59 * time.Minute)) {
		t.Fatalf("expiry = %v", tok.Exp)
	}
	claims, err := ParseAccessToken("s3cret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "admin@fyyur.test" || claims.Role != "ADMIN" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "admin@fyyur.test", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, err := ParseAccessToken("other", tok.Token); err == nil {
		t.Fatal("expected signature error")
	}
	expired, err := NewAccessToken("s3cret", "admin@fyyur.test", "ADMIN", -time.Minute)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, err := ParseAccessToken("s3cret", expired.Token); err == nil {
		t.Fatal("expected expiry error")
	}
	if _, err := ParseAccessToken("s3cret", "not.a.jwt"); err == nil {
		t.Fatal("expected malformed token error")
	}
	if _, err := NewAccessToken("", "x", "ADMIN", time.Hour); err == nil {
		t.Fatal("expected empty secret error")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("hash = %q", hash)
	}
	if !VerifyPassword(hash, "correct horse") {
		t.Fatal("password did not verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password verified")
	}
	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Fatal("expected empty password error")
	}
}
