package auth

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// maxUsernameLength is the maximum allowed username length.
const maxUsernameLength = 64

// IsValidUsername checks if a username meets format requirements.
// Usernames must be 1-64 characters, alphanumeric with dots, hyphens, underscores.
func IsValidUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

// User represents a registered account.
//
// PasswordDigest holds the Argon2id digest of the password; the plaintext is
// never stored, and the digest is never serialised into responses.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName       string             `bson:"userName" json:"userName"`
	PasswordDigest string             `bson:"password" json:"-"` // never serialised
	EmailAddress   string             `bson:"emailAddress" json:"emailAddress"`
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUsernameTaken      = errors.New("auth: username already in use")
	ErrInvalidUsername    = errors.New("auth: invalid username format")
)
