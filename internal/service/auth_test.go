package service

import (
	"strings"
	"testing"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register("anna@example.com", "secret123", models.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	token, err := env.auth.Login("anna@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authed, err := env.auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("anna@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = env.auth.Register("anna@example.com", "other456", "")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("anna@example.com", "secret123", "admin")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.auth.Register("anna@example.com", "", "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.auth.Register("anna@example.com", strings.Repeat("x", 73), "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("anna@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = env.auth.Login("anna@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Authenticate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
