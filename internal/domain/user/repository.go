package user

import "context"

// Repository looks up accounts by username.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// Writer persists accounts. Only the seeding tool writes users.
type Writer interface {
	Upsert(ctx context.Context, u *User) error
}
