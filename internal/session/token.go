// Package session mints opaque session tokens and persists the
// token-to-profile mapping. Tokens mark "logged in" only; Restore trusts
// the cached profile without re-checking the user store.
package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"pulseralux/internal/model"
)

// Claims carries the cached profile inside a session token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService mints and parses session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Mint issues a new session token for the profile. Tokens carry no expiry;
// a session lasts until logout.
func (s *TokenService) Mint(profile model.Profile) (string, error) {
	claims := &Claims{
		UserID: profile.ID,
		Name:   profile.Name,
		Email:  profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID: uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token's signature and returns its claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
