package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/delvoid/authgate/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	jwtIssuer   = "authgate"
	jwtAudience = "authgate-api"
)

// Claims are the JWT claims carried by both session credentials. The
// refresh credential additionally wraps the opaque session secret so it can
// be checked against the session-token store on rotation.
type Claims struct {
	jwt.RegisteredClaims
	User         model.TokenUser `json:"user"`
	RefreshToken string          `json:"refreshToken,omitempty"`
}

// GenerateAccessToken creates the short-lived signed access credential for
// a user's public identity.
func GenerateAccessToken(user model.TokenUser, secret string, ttl time.Duration) (string, error) {
	return signToken(Claims{
		RegisteredClaims: registeredClaims(user.UserID, ttl),
		User:             user,
	}, secret)
}

// GenerateRefreshToken creates the long-lived signed refresh credential
// wrapping the session secret.
func GenerateRefreshToken(user model.TokenUser, refreshToken, secret string, ttl time.Duration) (string, error) {
	return signToken(Claims{
		RegisteredClaims: registeredClaims(user.UserID, ttl),
		User:             user,
		RefreshToken:     refreshToken,
	}, secret)
}

func registeredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{jwtAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func signToken(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a signed credential, returning its
// claims if the signature, issuer, audience and expiry all check out.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithAudience(jwtAudience))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
