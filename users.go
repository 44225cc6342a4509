package filedock

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserService handles registration of user identity records.
type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

// Register validates the username/email pair and persists it under the
// one-email-one-identity rules:
//
//   - an email already held by a different username is rejected (ErrConflict)
//   - an identical (username, email) pair already present is rejected as a
//     no-op duplicate (ErrConflict)
//   - a known username with a new email has its record's email updated
//   - otherwise a new user record is inserted
//
// It returns the persisted record: freshly inserted, or the pre-existing,
// email-updated one.
func (s *UserService) Register(ctx context.Context, username, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, fmt.Errorf("register user: %w", err)
	}

	if err := validateIdentity(username, email); err != nil {
		return User{}, err
	}

	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("register user %s: find by email: %w", username, err)
	}
	if err == nil && !strings.EqualFold(byEmail.Username, username) {
		return User{}, fmt.Errorf("%w: this email is already associated with another user", ErrConflict)
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("register user %s: find by username: %w", username, err)
	}

	if err == nil {
		if strings.EqualFold(existing.Email, email) {
			return User{}, fmt.Errorf("%w: username already has this email", ErrConflict)
		}

		if updErr := s.users.UpdateEmail(ctx, existing.ID, email); updErr != nil {
			return User{}, fmt.Errorf("register user %s: update email: %w", username, updErr)
		}
		existing.Email = email
		return existing, nil
	}

	created, err := s.users.Create(ctx, User{Username: username, Email: email})
	if err != nil {
		return User{}, fmt.Errorf("register user %s: %w", username, err)
	}

	return created, nil
}

// validateIdentity runs the registration checks in a fixed order so each
// failure reports a single, stable reason: empty fields first, then the
// username length, then the email format, then the username character rules.
func validateIdentity(username, email string) error {
	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}

	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	if err := validateUsernameLength(username); err != nil {
		return err
	}

	if err := ValidateEmail(email); err != nil {
		return err
	}

	return validateUsernameCharacters(username)
}
