package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"trekbooking/internal/user"
)

type fakeIdentityStore struct {
	byEmail       map[string]*Identity
	confirmations map[string]string // token -> auth user id
	nextID        int
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{byEmail: map[string]*Identity{}, confirmations: map[string]string{}}
}

func (f *fakeIdentityStore) CreateIdentity(_ context.Context, email, passwordHash, fullName, phone string) (*Identity, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	f.nextID++
	id := &Identity{ID: string(rune('a' + f.nextID)), Email: email, PasswordHash: passwordHash, FullName: fullName, Phone: phone}
	f.byEmail[email] = id
	return id, nil
}

func (f *fakeIdentityStore) FindByEmail(_ context.Context, email string) (*Identity, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return id, nil
}

func (f *fakeIdentityStore) MarkEmailConfirmed(_ context.Context, authUserID string) error {
	for _, id := range f.byEmail {
		if id.ID == authUserID {
			id.EmailConfirmed = true
			return nil
		}
	}
	return errors.New("no rows")
}

func (f *fakeIdentityStore) CreateConfirmation(_ context.Context, authUserID string) (string, error) {
	token := "tok-" + authUserID
	f.confirmations[token] = authUserID
	return token, nil
}

func (f *fakeIdentityStore) ConsumeConfirmation(_ context.Context, token string) (string, error) {
	id, ok := f.confirmations[token]
	if !ok {
		return "", errors.New("no rows")
	}
	delete(f.confirmations, token)
	return id, nil
}

type fakeProfileStore struct {
	byAuthID   map[string]*user.Profile
	failCreate bool
	creates    int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byAuthID: map[string]*user.Profile{}}
}

func (f *fakeProfileStore) GetByAuthUserID(_ context.Context, authUserID string) (*user.Profile, error) {
	p, ok := f.byAuthID[authUserID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (f *fakeProfileStore) CreateFromIdentity(_ context.Context, authUserID, fullName, email, phone string, emailConfirmed bool) (*user.Profile, error) {
	if f.failCreate {
		return nil, errors.New("insert failed")
	}
	f.creates++
	p := &user.Profile{ID: "p-" + authUserID, AuthUserID: authUserID, FullName: fullName, Email: email, Phone: phone, EmailConfirmed: emailConfirmed}
	f.byAuthID[authUserID] = p
	return p, nil
}

func (f *fakeProfileStore) TouchLastLogin(_ context.Context, _ string) error { return nil }

func (f *fakeProfileStore) MarkEmailConfirmed(_ context.Context, authUserID string) error {
	if p, ok := f.byAuthID[authUserID]; ok {
		p.EmailConfirmed = true
	}
	return nil
}

func TestRegister_DuplicateEmail(t *testing.T) {
	identities := newFakeIdentityStore()
	profiles := newFakeProfileStore()
	svc := &Service{Identities: identities, Profiles: profiles}

	if _, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "9999", "secret1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "9999", "secret1")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if profiles.creates != 1 {
		t.Fatalf("expected exactly one profile row, got %d", profiles.creates)
	}
}

func TestRegister_NeedsConfirmation(t *testing.T) {
	svc := &Service{Identities: newFakeIdentityStore(), Profiles: newFakeProfileStore(), RequireConfirmation: true}

	_, needs, err := svc.Register(context.Background(), "Ravi", "ravi@example.com", "8888", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !needs {
		t.Fatalf("expected needsConfirmation=true")
	}
}

func TestSignIn_UniformInvalidCredentials(t *testing.T) {
	identities := newFakeIdentityStore()
	profiles := newFakeProfileStore()
	svc := &Service{Identities: identities, Profiles: profiles}

	if _, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "9999", "secret1"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, errUnknown := svc.SignIn(context.Background(), "nobody@example.com", "secret1")
	_, errWrong := svc.SignIn(context.Background(), "asha@example.com", "wrong")
	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("unknown-email and wrong-password errors must be indistinguishable")
	}
}

func TestSignIn_LazyProfileRepair(t *testing.T) {
	identities := newFakeIdentityStore()
	profiles := newFakeProfileStore()
	svc := &Service{Identities: identities, Profiles: profiles}

	// Simulate the profile insert failing at registration time.
	profiles.failCreate = true
	if _, _, err := svc.Register(context.Background(), "Ravi", "ravi@example.com", "8888", "secret1"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if len(profiles.byAuthID) != 0 {
		t.Fatalf("expected no profile row yet")
	}

	profiles.failCreate = false
	p, err := svc.SignIn(context.Background(), "ravi@example.com", "secret1")
	if err != nil {
		t.Fatalf("sign-in should repair the missing profile, got %v", err)
	}
	if p.Email != "ravi@example.com" || p.FullName != "Ravi" {
		t.Fatalf("repaired profile should carry identity metadata, got %+v", p)
	}
	if !p.EmailConfirmed {
		t.Fatalf("repaired profile should be treated as confirmed")
	}
}

func TestSignIn_BlockedUntilConfirmed(t *testing.T) {
	identities := newFakeIdentityStore()
	profiles := newFakeProfileStore()
	svc := &Service{Identities: identities, Profiles: profiles, RequireConfirmation: true}

	if _, _, err := svc.Register(context.Background(), "Maya", "maya@example.com", "7777", "secret1"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "maya@example.com", "secret1"); !errors.Is(err, ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}

	if err := svc.ConfirmEmail(context.Background(), "tok-"+identities.byEmail["maya@example.com"].ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "maya@example.com", "secret1"); err != nil {
		t.Fatalf("sign-in after confirmation failed: %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("trek-secret"), bcryptCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte("trek-secret")) != nil {
		t.Fatalf("expected matching password to verify")
	}
	if bcrypt.CompareHashAndPassword(hash, []byte("other")) == nil {
		t.Fatalf("expected mismatch to fail")
	}
}
