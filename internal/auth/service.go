package auth

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"trekbooking/internal/user"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
)

type IdentityStore interface {
	CreateIdentity(ctx context.Context, email, passwordHash, fullName, phone string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	MarkEmailConfirmed(ctx context.Context, authUserID string) error
	CreateConfirmation(ctx context.Context, authUserID string) (string, error)
	ConsumeConfirmation(ctx context.Context, token string) (string, error)
}

type ProfileStore interface {
	GetByAuthUserID(ctx context.Context, authUserID string) (*user.Profile, error)
	CreateFromIdentity(ctx context.Context, authUserID, fullName, email, phone string, emailConfirmed bool) (*user.Profile, error)
	TouchLastLogin(ctx context.Context, id string) error
	MarkEmailConfirmed(ctx context.Context, authUserID string) error
}

type Service struct {
	Identities IdentityStore
	Profiles   ProfileStore

	// RequireConfirmation gates sign-in on a confirmed email and makes
	// registration report needsConfirmation instead of completing a session.
	RequireConfirmation bool
}

const bcryptCost = 10

// dummyHash keeps the unknown-email path doing the same bcrypt work as the
// wrong-password path.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcryptCost)

// Register creates the identity, then the profile. A failed profile insert is
// logged and tolerated: sign-in lazily recreates the profile from identity
// metadata, so the identity is the durable record.
func (s *Service) Register(ctx context.Context, fullName, email, phone, password string) (*user.Profile, bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, false, err
	}

	identity, err := s.Identities.CreateIdentity(ctx, email, string(hash), fullName, phone)
	if err != nil {
		return nil, false, err
	}

	profile, err := s.Profiles.CreateFromIdentity(ctx, identity.ID, fullName, email, phone, false)
	if err != nil {
		log.Printf("auth: profile create failed after identity create email=%s err=%v", email, err)
		profile = nil
	}

	if !s.RequireConfirmation {
		return profile, false, nil
	}

	token, err := s.Identities.CreateConfirmation(ctx, identity.ID)
	if err != nil {
		log.Printf("auth: confirmation token create failed email=%s err=%v", email, err)
	} else {
		// Simulated dispatch; no real mail service is wired.
		log.Printf("auth: confirmation email queued email=%s token=%s", email, token)
	}
	return profile, true, nil
}

// SignIn validates credentials and returns the profile, creating it from
// identity metadata if the registration-time insert never landed.
func (s *Service) SignIn(ctx context.Context, email, password string) (*user.Profile, error) {
	identity, err := s.Identities.FindByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if s.RequireConfirmation && !identity.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	profile, err := s.Profiles.GetByAuthUserID(ctx, identity.ID)
	if err != nil {
		// Repair path: they can sign in, so treat the email as confirmed.
		profile, err = s.Profiles.CreateFromIdentity(ctx, identity.ID, identity.FullName, identity.Email, identity.Phone, true)
		if err != nil {
			return nil, err
		}
	}

	if err := s.Profiles.TouchLastLogin(ctx, profile.ID); err != nil {
		log.Printf("auth: last-login update failed user=%s err=%v", profile.ID, err)
	}
	return profile, nil
}

// ConfirmEmail consumes a confirmation token and flips both the identity and
// profile flags.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	authUserID, err := s.Identities.ConsumeConfirmation(ctx, token)
	if err != nil {
		return err
	}
	if err := s.Identities.MarkEmailConfirmed(ctx, authUserID); err != nil {
		return err
	}
	return s.Profiles.MarkEmailConfirmed(ctx, authUserID)
}
