package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/delvoid/authgate/internal/model"
)

var testUser = model.TokenUser{Name: "Delvoid", UserID: "b8a3f6de-3f0f-4f7a-9c20-02a1f4a9b9aa", Role: model.RoleUser}

func TestGenerateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(testUser, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken() returned empty string")
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.User != testUser {
		t.Errorf("ValidateToken() user = %+v, want %+v", claims.User, testUser)
	}
	if claims.RefreshToken != "" {
		t.Errorf("access credential carries refresh secret %q", claims.RefreshToken)
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	token, err := GenerateRefreshToken(testUser, "opaque-session-secret", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.RefreshToken != "opaque-session-secret" {
		t.Errorf("ValidateToken() refresh secret = %q, want %q", claims.RefreshToken, "opaque-session-secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for invalid token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testUser, "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	if _, err = ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("ValidateToken() expected error for wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(testUser, "test-secret", time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err = ValidateToken(token, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		User: testUser,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err = ValidateToken(tokenString, secret); err == nil {
		t.Error("ValidateToken() expected error for wrong issuer")
	}
}
