package auth

import (
	"testing"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals the plaintext password")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("VerifyPassword() = false for the right password")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("VerifyPassword() = true for the wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken(42, "ada")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ada" {
		t.Errorf("claims = (%d, %q), want (42, ada)", claims.UserID, claims.Username)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken(1, "bob")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("ParseToken() accepted a tampered token")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateToken(1, "bob")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	SetSecret("other-secret")
	defer SetSecret("test-secret")

	if _, err := ParseToken(token); err == nil {
		t.Error("ParseToken() accepted a token signed with another secret")
	}
}
