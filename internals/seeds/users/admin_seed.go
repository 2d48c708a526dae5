package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"readingroom_backend/internals/constants"
	database "readingroom_backend/internals/databases"
	authHelper "readingroom_backend/internals/features/users/auth/helper"
	authRepo "readingroom_backend/internals/features/users/auth/repository"
	userModel "readingroom_backend/internals/features/users/user/model"
)

// SeedAdmin creates the admin account when email and password are configured
// and no user with that email exists yet. It reports whether a user was created.
func SeedAdmin(ctx context.Context, users authRepo.UserRepository, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return false, fmt.Errorf("seed admin lookup: %w", err)
	}

	if err := authHelper.ValidatePassword(password); err != nil {
		return false, fmt.Errorf("seed admin: ADMIN_PASSWORD: %w", err)
	}
	hash, err := authHelper.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("seed admin hash: %w", err)
	}

	now := time.Now().UTC()
	err = users.Create(ctx, &userModel.UserModel{
		ID:        uuid.NewString(),
		UserName:  "admin",
		Email:     email,
		Password:  hash,
		FullName:  "Administrator",
		Role:      constants.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, database.ErrDuplicate) {
		// user name "admin" already taken by someone else
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin create: %w", err)
	}
	return true, nil
}
