package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readingroom_backend/internals/constants"
	authHelper "readingroom_backend/internals/features/users/auth/helper"
	userModel "readingroom_backend/internals/features/users/user/model"
	"readingroom_backend/internals/testutil"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates once", func(t *testing.T) {
		users := testutil.NewMemoryUsers()
		created, err := SeedAdmin(ctx, users, " Admin@Example.com ", "secret123")
		require.NoError(t, err)
		assert.True(t, created)

		u, err := users.FindByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, constants.RoleAdmin, u.Role)
		assert.True(t, u.IsActive)
		assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "secret123"))

		created, err = SeedAdmin(ctx, users, "admin@example.com", "secret123")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("unconfigured", func(t *testing.T) {
		created, err := SeedAdmin(ctx, testutil.NewMemoryUsers(), "", "secret123")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := SeedAdmin(ctx, testutil.NewMemoryUsers(), "admin@example.com", "short")
		assert.ErrorContains(t, err, "ADMIN_PASSWORD")
	})

	t.Run("user name taken", func(t *testing.T) {
		users := testutil.NewMemoryUsers(&userModel.UserModel{ID: "u1", UserName: "admin", Email: "other@example.com"})
		created, err := SeedAdmin(ctx, users, "admin@example.com", "secret123")
		require.NoError(t, err)
		assert.False(t, created)
	})
}
