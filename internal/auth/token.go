package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims binds a token to the user's email. Email is the identity key for
// the whole system, so nothing else needs to be carried.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the opaque session tokens handed out on
// user upsert.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(cfg config.JWTConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT secret must be configured")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 240 * time.Hour
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

func (i *TokenIssuer) Issue(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("cannot issue token for empty email")
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and recovers the bound email. Tampered, expired,
// or wrongly-signed tokens all map to ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
