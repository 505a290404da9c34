package repository

import (
	"context"
	"testing"

	"github.com/opendatagh/catalog/internal/catalog/repository/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)

	userRepo := NewUserRepository(repo.DB())
	ctx := context.Background()

	t.Run("Create and lookup", func(t *testing.T) {
		user := &model.User{
			Username:     "ama",
			Email:        "ama@example.com",
			PasswordHash: "x",
		}
		require.NoError(t, userRepo.Create(ctx, user))

		byEmail, err := userRepo.GetByEmail(ctx, "ama@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "ama", byEmail.Username)

		byUsername, err := userRepo.GetByUsername(ctx, "ama")
		assert.NoError(t, err)
		assert.Equal(t, byEmail.ID, byUsername.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := userRepo.Create(ctx, &model.User{
			Username: "ama2",
			Email:    "ama@example.com",
		})
		assert.Error(t, err)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := userRepo.Create(ctx, &model.User{
			Username: "ama",
			Email:    "other@example.com",
		})
		assert.Error(t, err)
	})

	t.Run("lookup missing user", func(t *testing.T) {
		_, err := userRepo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
