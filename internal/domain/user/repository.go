package user

import "context"

// Repository - read access to the users table plus the single write used by
// startup seeding.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User, passwordHash string) (User, error)
}
