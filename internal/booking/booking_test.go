package booking

import "testing"

func TestParseType(t *testing.T) {
	for _, s := range []string{"package", "trail", "eco_stay"} {
		if _, err := ParseType(s); err != nil {
			t.Fatalf("unexpected error for %s: %v", s, err)
		}
	}
	if _, err := ParseType("ecoStay"); err == nil {
		t.Fatalf("expected camel-case variant to be rejected")
	}
	if _, err := ParseType(""); err == nil {
		t.Fatalf("expected empty type to be rejected")
	}
}

func TestTargetColumnMatchesType(t *testing.T) {
	cases := map[Type]string{
		TypePackage: "package_id",
		TypeTrail:   "trail_id",
		TypeEcoStay: "eco_stay_id",
	}
	for typ, want := range cases {
		col, err := Target{Type: typ, ItemID: "x"}.Column()
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", typ, err)
		}
		if col != want {
			t.Fatalf("expected %s for %s, got %s", want, typ, col)
		}
	}
}

func TestTargetColumnRejectsUnknownType(t *testing.T) {
	if _, err := (Target{Type: "hotel"}).Column(); err == nil {
		t.Fatalf("expected unknown type to be rejected")
	}
}
