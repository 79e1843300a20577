package session

import (
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tok, claims, err := Issue("secret", "user-1", RoleCustomer, time.Hour, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}

	got, err := Verify(tok, "secret", RoleCustomer, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", got.Subject)
	}
	if got.ID != claims.ID {
		t.Fatalf("expected token id to survive the round trip")
	}
}

func TestVerifyRejectsWrongRole(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tok, _, err := Issue("secret", "user-1", RoleCustomer, time.Hour, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Verify(tok, "secret", RoleAdmin, now); err == nil {
		t.Fatalf("expected customer token to be rejected on admin surface")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tok, _, err := Issue("secret", "user-1", RoleAdmin, time.Hour, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Verify(tok, "secret", RoleAdmin, now.Add(2*time.Hour)); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tok, _, err := Issue("secret", "user-1", RoleAdmin, time.Hour, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Verify(tok, "other-secret", RoleAdmin, now); err == nil {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}
