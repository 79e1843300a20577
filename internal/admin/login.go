package admin

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"trekbooking/internal/adminuser"
)

// ErrInvalidLogin is returned for unknown username, wrong password, and
// inactive account alike. The three cases must be indistinguishable to the
// caller so usernames cannot be enumerated.
var ErrInvalidLogin = errors.New("invalid credentials")

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*adminuser.Admin, error)
	TouchLastLogin(ctx context.Context, id string) error
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), 10)

// Login authenticates a back-office user against the stored bcrypt hash.
func Login(ctx context.Context, store AdminStore, username, password string) (*adminuser.Admin, error) {
	a, err := store.FindByUsername(ctx, username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidLogin
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidLogin
	}
	if !a.IsActive {
		return nil, ErrInvalidLogin
	}

	if err := store.TouchLastLogin(ctx, a.ID); err != nil {
		log.Printf("admin: last-login update failed admin=%s err=%v", a.ID, err)
	}
	return a, nil
}
