package admin

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"trekbooking/internal/adminuser"
)

type fakeAdminStore struct {
	admins map[string]*adminuser.Admin
}

func (f *fakeAdminStore) FindByUsername(_ context.Context, username string) (*adminuser.Admin, error) {
	a, ok := f.admins[username]
	if !ok {
		return nil, errors.New("no rows")
	}
	return a, nil
}

func (f *fakeAdminStore) TouchLastLogin(_ context.Context, _ string) error { return nil }

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	store := &fakeAdminStore{admins: map[string]*adminuser.Admin{
		"admin":    {ID: "1", Username: "admin", PasswordHash: string(hash), IsActive: true},
		"disabled": {ID: "2", Username: "disabled", PasswordHash: string(hash), IsActive: false},
	}}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "admin123"},
		{"wrong password", "admin", "wrong"},
		{"inactive account", "disabled", "admin123"},
	}

	var messages []string
	for _, tc := range cases {
		_, err := Login(context.Background(), store, tc.username, tc.password)
		if !errors.Is(err, ErrInvalidLogin) {
			t.Fatalf("%s: expected ErrInvalidLogin, got %v", tc.name, err)
		}
		messages = append(messages, err.Error())
	}
	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Fatalf("error text differs between failure modes: %q vs %q", messages[0], messages[i])
		}
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	store := &fakeAdminStore{admins: map[string]*adminuser.Admin{
		"admin": {ID: "1", Username: "admin", PasswordHash: string(hash), IsActive: true},
	}}

	a, err := Login(context.Background(), store, "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Username != "admin" {
		t.Fatalf("unexpected admin: %+v", a)
	}
}
