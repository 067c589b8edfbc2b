package repository

import (
	"context"
	"fmt"
	"sort"

	userDomain "github.com/seafuel/service-voyage/internal/domain/user"
	"github.com/seafuel/service-voyage/internal/platform/auth"
)

// StaticUserRepository serves users from configuration.
type StaticUserRepository struct {
	users map[string]*userDomain.User
}

// NewStaticUserRepository builds the store from username to secret pairs.
// Secrets that are already bcrypt hashes are kept; anything else is hashed with cost.
func NewStaticUserRepository(credentials map[string]string, cost int) (*StaticUserRepository, error) {
	users, err := UsersFromCredentials(credentials, cost)
	if err != nil {
		return nil, err
	}
	repo := &StaticUserRepository{users: make(map[string]*userDomain.User, len(users))}
	for _, u := range users {
		repo.users[u.Username()] = u
	}
	return repo, nil
}

func (r *StaticUserRepository) FindByUsername(_ context.Context, username string) (*userDomain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	return u, nil
}

func (r *StaticUserRepository) Len() int { return len(r.users) }

// UsersFromCredentials converts configured credentials into users, sorted by username.
func UsersFromCredentials(credentials map[string]string, cost int) ([]*userDomain.User, error) {
	names := make([]string, 0, len(credentials))
	for name := range credentials {
		names = append(names, name)
	}
	sort.Strings(names)

	users := make([]*userDomain.User, 0, len(names))
	for _, name := range names {
		secret := credentials[name]
		hash := secret
		if !auth.IsHash(secret) {
			var err error
			if hash, err = auth.HashPassword(secret, cost); err != nil {
				return nil, fmt.Errorf("hash password for %s: %w", name, err)
			}
		}
		u, err := userDomain.NewUser(name, hash)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		users = append(users, u)
	}
	return users, nil
}
