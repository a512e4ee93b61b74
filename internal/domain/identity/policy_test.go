package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		safeMethod bool
		want       bool
	}{
		{"admin can read", RoleAdmin, true, true},
		{"admin can write", RoleAdmin, false, true},
		{"viewer can read", RoleViewer, true, true},
		{"viewer cannot write", RoleViewer, false, false},
		{"unknown role cannot read", Role(""), true, false},
		{"unknown role cannot write", Role("manager"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.role, tt.safeMethod))
		})
	}
}

func TestCanAccessObject(t *testing.T) {
	t.Run("owner can write own resource", func(t *testing.T) {
		assert.True(t, CanAccessObject(RoleViewer, false, "user-1", "user-1"))
	})

	t.Run("non-owner viewer cannot write", func(t *testing.T) {
		assert.False(t, CanAccessObject(RoleViewer, false, "user-1", "user-2"))
	})

	t.Run("admin can write any resource", func(t *testing.T) {
		assert.True(t, CanAccessObject(RoleAdmin, false, "user-1", "user-2"))
	})

	t.Run("ownerless resource falls back to role check", func(t *testing.T) {
		assert.False(t, CanAccessObject(RoleViewer, false, "user-1", ""))
		assert.True(t, CanAccessObject(RoleViewer, true, "user-1", ""))
	})
}

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod("GET"))
	assert.True(t, IsSafeMethod("HEAD"))
	assert.True(t, IsSafeMethod("OPTIONS"))
	assert.False(t, IsSafeMethod("POST"))
	assert.False(t, IsSafeMethod("PUT"))
	assert.False(t, IsSafeMethod("PATCH"))
	assert.False(t, IsSafeMethod("DELETE"))
}

func TestNewUser(t *testing.T) {
	t.Run("creates viewer by default", func(t *testing.T) {
		user, err := NewUser("Alice@Example.com", "password1")

		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, RoleViewer, user.Role)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.True(t, user.VerifyPassword("password1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "password1")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("alice@example.com", "short")
		assert.Error(t, err)
	})
}

func TestNewAdmin(t *testing.T) {
	user, err := NewAdmin("root@example.com", "password1")

	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsAdmin())
}

func TestUser_FullName(t *testing.T) {
	user, err := NewUser("alice@example.com", "password1")
	assert.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.FullName())

	user.FirstName = "Alice"
	user.LastName = "Smith"
	assert.Equal(t, "Alice Smith", user.FullName())
}
