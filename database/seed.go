package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema_booking/config"
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/repository"
)

// SeedAdmin creates the admin account when no user owns the configured email.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, store repository.Store, cfg config.AdminConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		return false, errors.New("admin email and password must be set")
	}
	_, err := store.Users().FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	hash, err := helper.HashPassword(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{
		Email:        email,
		UserName:     cfg.Name,
		PasswordHash: hash,
		Role:         constants.ROLE_ADMIN,
		IsActive:     true,
	}
	if err := store.Users().Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
