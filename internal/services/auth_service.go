package services

import (
	"fmt"
	"time"

	"stockroom/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService issues the HS256 access tokens the JWT middleware verifies.
type AuthService interface {
	GenerateToken(user *models.User) (string, error)
}

type authService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stockroom-auth",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}
