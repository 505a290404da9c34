package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/opendatagh/catalog/internal/catalog/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocalProvider(t *testing.T, secret string) *LocalProvider {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	repo, err := repository.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})

	return NewLocalProvider(secret, repository.NewUserRepository(repo.DB()))
}

func TestLocalProvider(t *testing.T) {
	t.Parallel()

	provider := setupLocalProvider(t, "test-secret")
	ctx := context.Background()

	t.Run("sign up then sign in", func(t *testing.T) {
		result, err := provider.SignUp(ctx, "ama@example.com", "secret123", "ama")
		require.NoError(t, err)
		assert.Equal(t, "ama@example.com", result.Email)

		session, err := provider.SignIn(ctx, "ama@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, "bearer", session.TokenType)
	})

	t.Run("duplicate sign up fails", func(t *testing.T) {
		_, err := provider.SignUp(ctx, "ama@example.com", "secret123", "ama2")
		assert.Error(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.SignIn(ctx, "ama@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := provider.SignIn(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("token round trip", func(t *testing.T) {
		session, err := provider.SignIn(ctx, "ama@example.com", "secret123")
		require.NoError(t, err)

		user, err := provider.GetUser(ctx, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "ama@example.com", user.Email)
		assert.Equal(t, "ama", user.Username)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := setupLocalProvider(t, "other-secret")
		_, err := other.SignUp(ctx, "ama@example.com", "secret123", "ama")
		require.NoError(t, err)
		session, err := other.SignIn(ctx, "ama@example.com", "secret123")
		require.NoError(t, err)

		_, err = provider.GetUser(ctx, session.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := provider.GetUser(ctx, "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("resend requires a known email", func(t *testing.T) {
		assert.NoError(t, provider.Resend(ctx, "ama@example.com"))
		assert.Error(t, provider.Resend(ctx, "nobody@example.com"))
	})
}
