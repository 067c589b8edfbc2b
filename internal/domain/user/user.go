// Package user models the accounts allowed to sign in.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned by repositories for unknown usernames.
var ErrUserNotFound = errors.New("user not found")

// User is an account with a bcrypt password hash.
type User struct {
	id           uuid.UUID
	username     string
	passwordHash string
	createdAt    time.Time
}

// NewUser creates a user from an already hashed password.
func NewUser(username, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}
	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, username, passwordHash string, createdAt time.Time) *User {
	return &User{id: id, username: username, passwordHash: passwordHash, createdAt: createdAt}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
