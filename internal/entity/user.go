package entity

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when no user matches the given id, email or external id.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering with an email that is already taken.
	ErrEmailExists = errors.New("email exists")
	// ErrInvalidCredentials is returned when the email/password pair doesn't match a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered account. PasswordHash is empty for users created
// through Google federation; GoogleID is empty for password-registered users.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	GoogleID     string
	CreatedAt    time.Time
}
