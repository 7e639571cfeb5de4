package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/service"
)

func testAuthConfig(t *testing.T) *config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.AuthConfig{
		JWTSecret:         "test-secret-key",
		TokenExpiry:       time.Hour,
		Issuer:            "claimlens-test",
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
	}
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	token, expiresAt, err := svc.Login("admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "claimlens-test", claims.Issuer)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, _, err := svc.Login("admin@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login("someone@else.com", "admin-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_VerifyRejectsGarbageToken(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, err := svc.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_VerifyRejectsForeignSignature(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))
	other := testAuthConfig(t)
	other.JWTSecret = "a-different-secret"
	otherSvc := service.NewAuthService(other)

	token, _, err := otherSvc.Login("admin@example.com", "admin-password")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
