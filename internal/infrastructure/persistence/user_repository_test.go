package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invento/backend/internal/domain/identity"
	"github.com/invento/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *GormUserRepository, email string, admin bool) *identity.User {
	t.Helper()
	var (
		user *identity.User
		err  error
	)
	if admin {
		user, err = identity.NewAdmin(email, "password1")
	} else {
		user, err = identity.NewUser(email, "password1")
	}
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	user := seedUser(t, repo, "alice@example.com", false)

	t.Run("finds by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.Equal(t, identity.RoleViewer, found.Role)
		assert.True(t, found.IsActive)
	})

	t.Run("finds by email regardless of case", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("maps missing user to ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("maps duplicate email to ErrAlreadyExists", func(t *testing.T) {
		dup, err := identity.NewUser("alice@example.com", "password2")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	seedUser(t, repo, "alice@example.com", false)

	exists, err := repo.ExistsByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_ListAdminEmails(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	seedUser(t, repo, "viewer@example.com", false)
	seedUser(t, repo, "zed@example.com", true)
	seedUser(t, repo, "amy@example.com", true)

	inactive := seedUser(t, repo, "gone@example.com", true)
	inactive.IsActive = false
	require.NoError(t, repo.Save(ctx, inactive))

	emails, err := repo.ListAdminEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy@example.com", "zed@example.com"}, emails)
}

func TestGormUserRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	seedUser(t, repo, "alice@example.com", false)
	bob := seedUser(t, repo, "bob@example.com", false)
	bob.FirstName = "Bob"
	require.NoError(t, repo.Save(ctx, bob))

	t.Run("returns all users", func(t *testing.T) {
		users, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, users, 2)

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("searches by email and name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "bob"
		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob@example.com", users[0].Email)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
