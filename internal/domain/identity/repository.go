package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/invento/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (lowercased, exact match)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll finds users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// ListAdminEmails returns the email of every active admin user
	ListAdminEmails(ctx context.Context) ([]string, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks whether a user with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
