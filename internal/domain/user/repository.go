package user

import "context"

type UserRepository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	// FindByEmail returns nil, nil when no user has the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)
}
