package booking

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotal(t *testing.T) {
	unit := decimal.RequireFromString("3500")
	got := Total(unit, 3)
	if !got.Equal(decimal.RequireFromString("10500")) {
		t.Fatalf("expected 10500, got %s", got)
	}
}

func TestTotalSingleParticipant(t *testing.T) {
	unit := decimal.RequireFromString("1299.50")
	got := Total(unit, 1)
	if !got.Equal(unit) {
		t.Fatalf("expected %s, got %s", unit, got)
	}
}
