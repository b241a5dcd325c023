package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/weatherapp/backend/internal/domain"
	"github.com/weatherapp/backend/internal/repository/postgres"
)

const testSecret = "test-secret"

func newTestAuth(t *testing.T) (*AuthService, *postgres.MemoryRepository) {
	t.Helper()
	repo := postgres.NewMemoryRepository()
	return NewAuthService(repo, testSecret, 24*time.Hour), repo
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	auth, repo := newTestAuth(t)
	ctx := context.Background()

	user, token, err := auth.Register(ctx, " amina ", "amina@example.com", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "amina", user.Username)

	stored, err := repo.GetUserByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"), "password should be hashed with bcrypt")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	auth, _ := newTestAuth(t)

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"no_username", "", "a@example.com", "pw"},
		{"blank_email", "amina", "   ", "pw"},
		{"no_password", "amina", "a@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrMissingParameter)
		})
	}
}

func TestAuthService_RegisterPasswordTooLong(t *testing.T) {
	auth, repo := newTestAuth(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "amina", "amina@example.com", strings.Repeat("x", 73))

	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
	_, err = repo.GetUserByEmail(ctx, "amina@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "amina", "amina@example.com", "pw")
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, "other", "amina@example.com", "pw")

	var dup *domain.DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestAuthService_Login(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	registered, _, err := auth.Register(ctx, "amina", "amina@example.com", "pw")
	require.NoError(t, err)

	user, token, err := auth.Login(ctx, "amina@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	authed, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authed.ID)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "amina", "amina@example.com", "pw")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "amina@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	auth, repo := newTestAuth(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, domain.User{Username: "amina", Email: "amina@example.com"})
	require.NoError(t, err)

	expired := NewAuthService(repo, testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.IssueToken(user.ID)
	require.NoError(t, err)

	otherSecret, err := NewAuthService(repo, "other-secret", time.Hour).IssueToken(user.ID)
	require.NoError(t, err)

	unknownUser, err := auth.IssueToken("does-not-exist")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": user.ID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"expired":      expiredToken,
		"wrong_secret": otherSecret,
		"unknown_user": unknownUser,
		"none_alg":     noneAlg,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Authenticate(ctx, token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
