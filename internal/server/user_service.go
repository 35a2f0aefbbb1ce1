package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/db"
	"github.com/mbenali/jobboard/internal/types"
)

// UserStore is the slice of the storage layer the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email string, role types.Role, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserName(ctx context.Context, userID uuid.UUID, name string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// UserService provides account registration, login and profile updates.
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
	adminEmails    map[string]bool
}

// NewUserService creates a UserService. adminEmails lists the addresses that
// register with the admin role; everyone else registers as a regular user.
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig, adminEmails []string) *UserService {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = true
		}
	}
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
		adminEmails:    admins,
	}
}

// toAPIUser converts a db.User to the API representation, dropping the hash.
func toAPIUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register creates a new account.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := types.RoleUser
	if s.adminEmails[strings.ToLower(req.Email)] {
		role = types.RoleAdmin
	}

	userID, err := s.store.CreateUser(ctx, req.Name, req.Email, role, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}
	return toAPIUser(user), nil
}

// Login authenticates an account.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same generic error for unknown email and wrong password.
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toAPIUser(user), nil
}

// Update applies a display-name and/or password change to an account.
// Password changes verify the current password first.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*types.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	if req.Name != "" && req.Name != user.Name {
		if err := s.store.UpdateUserName(ctx, userID, req.Name); err != nil {
			return nil, fmt.Errorf("failed to update name: %w", err)
		}
	}

	if req.NewPassword != "" {
		if !s.passwordConfig.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
			return nil, &ErrPasswordMismatch{}
		}
		newHash, err := s.passwordConfig.HashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash new password: %w", err)
		}
		if err := s.store.UpdatePassword(ctx, userID, newHash); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}

	updated, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated user: %w", err)
	}
	return toAPIUser(updated), nil
}
