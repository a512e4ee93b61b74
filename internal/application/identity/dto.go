package identity

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/invento/backend/internal/domain/identity"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains tokens and user info returned after register or login
type AuthResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// RefreshResult contains the result of a token refresh
type RefreshResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// UpdateProfileInput contains the input for profile updates. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// UserInfo contains user information exposed through the API
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserInfo maps a domain user to its API representation
func NewUserInfo(user *domain.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserInfos maps a slice of domain users
func NewUserInfos(users []domain.User) []UserInfo {
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = NewUserInfo(&users[i])
	}
	return infos
}
