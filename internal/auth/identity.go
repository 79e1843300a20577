package auth

import "time"

// Identity is the credential record (auth_users). It is deliberately separate
// from the public profile row: profile creation can fail after identity
// creation, and sign-in repairs the gap from this metadata.
type Identity struct {
	ID             string
	Email          string
	PasswordHash   string
	FullName       string
	Phone          string
	EmailConfirmed bool
	CreatedAt      time.Time
}
