package utils

import (
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(42, "kim@snu.ac.kr", "access", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "kim@snu.ac.kr" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Type != "access" {
		t.Errorf("Type = %q, want access", claims.Type)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "kim@snu.ac.kr", "access", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateJWT(token, "another-secret-another-secret-12"); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT(42, "kim@snu.ac.kr", "access", testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateJWT(token, testSecret); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestValidateJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token", testSecret); err == nil {
		t.Error("malformed token must not validate")
	}
}
