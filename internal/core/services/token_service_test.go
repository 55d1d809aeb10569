package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/core/services"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour, "clubledger-test")
	user := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleAdmin, domain.RoleTrainer}}

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, roles, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, subject)
	assert.Equal(t, user.Roles, roles)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := services.NewTokenService("secret-a", time.Hour, "clubledger-test")
	verifier := services.NewTokenService("secret-b", time.Hour, "clubledger-test")
	user := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}}

	token, _, err := issuer.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)

	_, _, err = verifier.ValidateAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := services.NewTokenService("test-secret", -time.Minute, "clubledger-test")
	user := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}}

	token, _, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)

	_, _, err = svc.ValidateAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour, "clubledger-test")

	_, _, err := svc.ValidateAccessToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
