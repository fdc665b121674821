package auth

import (
	"context"
	"errors"
	"fmt"
)

// Authenticator registers and authenticates user accounts.
//
// It never persists or logs plaintext passwords; only Argon2id digests
// reach the repository.
type Authenticator struct {
	users  UserRepository
	params Params
}

// NewAuthenticator creates an Authenticator over the given user repository.
// Zero-valued cost parameters fall back to the hashing defaults.
func NewAuthenticator(users UserRepository, params Params) *Authenticator {
	return &Authenticator{users: users, params: params.withDefaults()}
}

// Register creates a new account with the given credentials.
//
// Uniqueness is enforced by the store's unique userName index — there is
// no pre-insert lookup, so no window in which two concurrent registrations
// with the same userName can both succeed.
//
// Returns:
//   - ErrInvalidUsername: the userName fails format validation
//   - ErrUsernameTaken: an account with this userName already exists
//   - error: wrapped store or hashing failure otherwise
func (a *Authenticator) Register(ctx context.Context, userName, password, email string) (*User, error) {
	if !IsValidUsername(userName) {
		return nil, ErrInvalidUsername
	}

	digest, err := HashPassword(password, a.params)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		UserName:       userName,
		PasswordDigest: digest,
		EmailAddress:   email,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a userName/password pair.
//
// Unknown userName and wrong password both yield ErrInvalidCredentials so
// callers cannot enumerate usernames from the failure mode.
//
// Returns:
//   - *User: the authenticated account on success
//   - ErrInvalidCredentials: unknown userName or digest mismatch
//   - error: wrapped store or verification failure otherwise
func (a *Authenticator) Authenticate(ctx context.Context, userName, password string) (*User, error) {
	user, err := a.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordDigest)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
