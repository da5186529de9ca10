package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSecretNotConfigured is returned when token operations run without a signing secret
var ErrSecretNotConfigured = errors.New("JWT secret is not configured")

// TokenStatus is the outcome of verifying a bearer token
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenMalformed
)

// Claims represents the JWT claims carried by a mood tracker session token
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// GenerateToken creates a signed HS256 token encoding the user id
func GenerateToken(userID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	if secret == "" {
		return "", ErrSecretNotConfigured
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates signature and expiry, returning a tagged status so
// callers can tell "log in again" (expired) apart from tampered or garbage
// input (malformed). The user id is only meaningful when status is TokenValid.
func VerifyToken(tokenString, secret string) (TokenStatus, uuid.UUID) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenExpired, uuid.Nil
		}
		return TokenMalformed, uuid.Nil
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return TokenMalformed, uuid.Nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenMalformed, uuid.Nil
	}

	return TokenValid, userID
}
