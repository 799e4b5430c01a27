// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements account registration, login and profile updates.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo  *repository.Repository
	admin config.AdminConfig
	cost  int
}

func NewService(repo *repository.Repository, admin config.AdminConfig) *Service {
	return &Service{
		repo:  repo,
		admin: admin,
		cost:  bcrypt.DefaultCost,
	}
}

// WithRepository returns a copy of the service bound to repo,
// typically a transaction-scoped repository.
func (s *Service) WithRepository(repo *repository.Repository) *Service {
	clone := *s
	clone.repo = repo
	return &clone
}

// AdminUsername returns the configured admin account name.
func (s *Service) AdminUsername() string {
	return s.admin.Username
}

// RegisterParams holds the parameters for user registration
type RegisterParams struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	taken, err := s.repo.UsernameExists(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, params.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(passwordHash),
		IsAdmin:      params.IsAdmin,
	}

	// The unique constraints still win a race between the checks above and the insert.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Login authenticates a user and returns the user if successful
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "username", username, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "username", username, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "username", username)
	return user, nil
}

// UpdateEmail changes the email of userID unless another account uses it.
func (s *Service) UpdateEmail(ctx context.Context, userID int64, email string) error {
	taken, err := s.repo.EmailExists(ctx, email, userID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	if err := s.repo.UpdateUserEmail(ctx, userID, email); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update email: %w", err)
	}

	slog.Info("profile_updated", "user_id", userID)
	return nil
}

// Admin returns the configured admin account.
func (s *Service) Admin(ctx context.Context) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, s.admin.Username)
}

// EnsureAdmin returns the configured admin account, creating it if needed.
// An existing account keeps its password and email.
func (s *Service) EnsureAdmin(ctx context.Context) (*models.User, error) {
	user, err := s.Admin(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	user, err = s.Register(ctx, RegisterParams{
		Username: s.admin.Username,
		Email:    s.admin.Email,
		Password: s.admin.Password,
		IsAdmin:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("admin_created", "user_id", user.ID, "username", user.Username)
	return user, nil
}
