package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "secret123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Username != "alice" {
		t.Errorf("Expected username alice, got %s", user.Username)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Username too short
	_, err = NewUser("ab", "secret123")
	if !errors.Is(err, ErrUsernameTooShort) {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooShort, err)
	}

	// Empty username
	_, err = NewUser("", "secret123")
	if !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	// Password too short
	_, err = NewUser("alice", "short")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	validUser := User{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// A stored user without either password form is invalid.
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}
