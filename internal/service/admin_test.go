package service

import (
	"context"
	"testing"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	users := repository.NewUserRepo(newTestDB(t))

	created, err := SeedAdmin(ctx, users, "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, users, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.CheckPassword("admin123"))
}

func TestForceResetPassword(t *testing.T) {
	ctx := context.Background()
	users := repository.NewUserRepo(newTestDB(t))
	_, err := SeedAdmin(ctx, users, "admin@example.com", "admin123")
	require.NoError(t, err)

	before, err := users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)

	_, err = ForceResetPassword(ctx, users, " Admin@Example.COM ", "newpass1")
	require.NoError(t, err)

	after, err := users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, after.CheckPassword("newpass1"))
	assert.NotEqual(t, before.TokenVersion, after.TokenVersion)

	_, err = ForceResetPassword(ctx, users, "admin@example.com", "123")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = ForceResetPassword(ctx, users, "nobody@example.com", "newpass1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
