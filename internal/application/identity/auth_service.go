package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	domain "github.com/invento/backend/internal/domain/identity"
	"github.com/invento/backend/internal/domain/shared"
	"github.com/invento/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AccountNotifier dispatches account-related emails. Implementations are
// fire-and-forget; a delivery failure never fails the triggering operation.
type AccountNotifier interface {
	Welcome(user *domain.User)
	LoginAlert(user *domain.User, at time.Time)
}

// AuthService handles registration, authentication and session lifecycle
type AuthService struct {
	users     domain.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	notifier  AccountNotifier
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users domain.UserRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	notifier AccountNotifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		jwt:       jwt,
		blacklist: blacklist,
		notifier:  notifier,
		logger:    logger,
	}
}

// Register creates a new viewer account and returns a fresh token pair
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	taken, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}
	if taken {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	user, err := domain.NewUser(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	user.FirstName = input.FirstName
	user.LastName = input.LastName

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("Failed to persist new user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	if s.notifier != nil {
		snapshot := *user
		go s.notifier.Welcome(&snapshot)
	}

	return s.authResult(user, tokens), nil
}

// Login authenticates a user and returns a fresh token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Login attempt with wrong password", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for inactive account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	if s.notifier != nil {
		snapshot := *user
		go s.notifier.LoginAlert(&snapshot, time.Now())
	}

	return s.authResult(user, tokens), nil
}

// Refresh rotates a refresh token into a new token pair. The used refresh
// token is blacklisted for its remaining lifetime.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.blacklist.Add(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Warn("Failed to blacklist rotated refresh token", zap.Error(err))
	}

	return &RefreshResult{
		AccessToken:           tokens.AccessToken,
		RefreshToken:          tokens.RefreshToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
		TokenType:             tokens.TokenType,
	}, nil
}

// Logout invalidates a refresh token. Unknown or expired tokens are ignored
// so logout stays idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	if err := s.blacklist.Add(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist refresh token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Profile returns the profile of the given user
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	info := NewUserInfo(user)
	return &info, nil
}

// UpdateProfile applies a partial profile update
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("Failed to persist profile update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// ListUsers returns a page of users. Access control happens at the transport
// layer; only admins reach this.
func (s *AuthService) ListUsers(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	users, err := s.users.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}
	page := shared.NewPaginated(NewUserInfos(users), total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*auth.TokenPair, error) {
	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue tokens")
	}
	return tokens, nil
}

func (s *AuthService) authResult(user *domain.User, tokens *auth.TokenPair) *AuthResult {
	return &AuthResult{
		AccessToken:           tokens.AccessToken,
		RefreshToken:          tokens.RefreshToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
		TokenType:             tokens.TokenType,
		User:                  NewUserInfo(user),
	}
}
