package services

import (
	"testing"
	"time"

	"stockroom/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_CarriesSubjectAndRole(t *testing.T) {
	secret := "test-secret"
	service := NewAuthService(secret, time.Hour)
	user := &models.User{ID: uuid.New(), Username: "emp", Role: models.RoleEmployee}

	signed, err := service.GenerateToken(user)
	require.NoError(t, err)

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleEmployee, claims.Role)
	assert.Equal(t, "stockroom-auth", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateToken_WrongSecretRejected(t *testing.T) {
	service := NewAuthService("right-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	signed, err := service.GenerateToken(user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
