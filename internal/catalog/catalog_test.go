package catalog

import "testing"

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"Beginner", "Intermediate", "Expert"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Fatalf("unexpected error for %s: %v", s, err)
		}
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Fatalf("expected lowercase to be rejected")
	}
	if _, err := ParseDifficulty("Impossible"); err == nil {
		t.Fatalf("expected unknown difficulty to be rejected")
	}
}

func TestParseItemStatus(t *testing.T) {
	for _, s := range []string{"Active", "Draft", "Inactive"} {
		if _, err := ParseItemStatus(s); err != nil {
			t.Fatalf("unexpected error for %s: %v", s, err)
		}
	}
	if _, err := ParseItemStatus("Archived"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}
