package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "client", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "client" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "client", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("other", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "provider", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("secret", token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestValidateTokenRequiresSubject(t *testing.T) {
	token, err := GenerateToken("secret", "", "client", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("secret", token); err == nil {
		t.Fatal("expected missing subject error")
	}
}
