package service

import (
	"context"
	"errors"
	"fmt"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"

	"github.com/google/uuid"
)

// SeedAdmin creates the default administrator when no admin account exists.
// It reports whether an account was created.
func SeedAdmin(ctx context.Context, users repository.UserRepository, email, password string) (bool, error) {
	n, err := users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	email = normalizeEmail(email)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return false, fmt.Errorf("seed admin: %s exists without the admin role", email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	admin := &model.User{
		Username: "Administrator",
		Email:    email,
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(password); err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

// ForceResetPassword replaces the password of the account without asking for
// the current one and ends its open session.
func ForceResetPassword(ctx context.Context, users repository.UserRepository, email, password string) (*model.User, error) {
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	user, err := users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return nil, err
	}
	if err := users.UpdateTokenVersion(ctx, user.ID, uuid.New().String()); err != nil {
		return nil, err
	}
	return user, nil
}
