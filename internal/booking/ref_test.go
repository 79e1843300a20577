package booking

import (
	"testing"
	"time"
)

func TestNewRefFormat(t *testing.T) {
	ref := NewRef(time.UnixMilli(1735689600123))
	if len(ref) != 8 {
		t.Fatalf("expected 8 chars, got %q", ref)
	}
	if ref[:2] != "BK" {
		t.Fatalf("expected BK prefix, got %q", ref)
	}
	for _, c := range ref[2:] {
		if c < '0' || c > '9' {
			t.Fatalf("expected digits after prefix, got %q", ref)
		}
	}
}

func TestNewRefUsesMillisecondTail(t *testing.T) {
	if got := NewRef(time.UnixMilli(1735689600123)); got != "BK600123" {
		t.Fatalf("expected BK600123, got %q", got)
	}
}
