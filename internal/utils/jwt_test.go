package utils

import (
	"testing"
	"time"
)

func testPayload() TokenPayload {
	return TokenPayload{UserID: 42, Email: "ana@example.com", Role: "RECRUITER", Name: "Ana"}
}

func TestNewAccessToken(t *testing.T) {
	at, err := NewAccessToken("test-secret", testPayload(), 15)
	if err != nil {
		t.Fatalf("NewAccessToken() unexpected error: %v", err)
	}
	if at.Token == "" {
		t.Fatal("NewAccessToken() returned empty token")
	}
	if !at.Exp.After(time.Now()) {
		t.Error("NewAccessToken() expiry is not in the future")
	}
}

func TestParseAccessToken_RoundTrip(t *testing.T) {
	at, err := NewAccessToken("test-secret", testPayload(), 15)
	if err != nil {
		t.Fatalf("NewAccessToken() unexpected error: %v", err)
	}
	p, err := ParseAccessToken("test-secret", at.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken() unexpected error: %v", err)
	}
	if p.UserID != 42 || p.Email != "ana@example.com" || p.Role != "RECRUITER" || p.Name != "Ana" {
		t.Errorf("ParseAccessToken() payload = %+v", p)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	at, _ := NewAccessToken("correct-secret", testPayload(), 15)
	if _, err := ParseAccessToken("wrong-secret", at.Token); err != ErrInvalidToken {
		t.Errorf("ParseAccessToken() = %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	if _, err := ParseAccessToken("test-secret", "not-a-token"); err != ErrInvalidToken {
		t.Errorf("ParseAccessToken() = %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	at, _ := NewAccessToken("test-secret", testPayload(), -1)
	if _, err := ParseAccessToken("test-secret", at.Token); err != ErrInvalidToken {
		t.Errorf("ParseAccessToken() on expired token = %v, want ErrInvalidToken", err)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}
