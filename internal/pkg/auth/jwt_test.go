package auth

import (
	"errors"
	"testing"
	"time"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: exp,
		TokenIssuer:    "placement-portal-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := testService(time.Hour)

	token, expiresIn, err := service.GenerateToken("123456789", "student")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken returned an empty token")
	}
	if expiresIn != int(time.Hour.Seconds()) {
		t.Errorf("expiresIn = %d, want %d", expiresIn, int(time.Hour.Seconds()))
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Identity != "123456789" {
		t.Errorf("claims.Identity = %q, want %q", claims.Identity, "123456789")
	}
	if claims.Role != "student" {
		t.Errorf("claims.Role = %q, want %q", claims.Role, "student")
	}
	if claims.Issuer != "placement-portal-test" {
		t.Errorf("claims.Issuer = %q, want %q", claims.Issuer, "placement-portal-test")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	service := testService(-time.Minute)

	token, _, err := service.GenerateToken("123456789", "student")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := service.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testService(time.Hour).GenerateToken("123456789", "student")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:      "another-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placement-portal-test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token signed with a different secret")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken returned error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %q, want %q", token, "abc.def.ghi")
	}

	for _, header := range []string{"", "abc.def.ghi", "Basic abc", "Bearer"} {
		if _, err := ExtractBearerToken(header); err == nil {
			t.Errorf("ExtractBearerToken(%q) should fail", header)
		}
	}
}
