package users

import "context"

// Repository persists user records keyed by their unique username.
//
// Create must behave atomically with respect to concurrent creations of the
// same username: exactly one caller succeeds, the rest get
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)

	// IncrementTokenVersion atomically bumps the user's token version and
	// returns the new value, invalidating all previously issued tokens.
	IncrementTokenVersion(ctx context.Context, login string) (int64, error)

	// UpdatePassword replaces the salt and hash and bumps the token version
	// in a single statement, returning the new version.
	UpdatePassword(ctx context.Context, login string, salt, passwordHash []byte) (int64, error)
}
