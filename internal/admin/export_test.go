package admin

import (
	"testing"
	"time"

	"trekbooking/internal/booking"
)

func TestBuildBookingsWorkbook(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	rows := []booking.AdminRow{
		{
			Booking: booking.Booking{
				Ref:           "BK600123",
				Target:        booking.Target{Type: booking.TypePackage, ItemID: "p1"},
				Participants:  3,
				Date:          date,
				TotalAmount:   "10500",
				Status:        booking.StatusPending,
				PaymentStatus: booking.PaymentPending,
				CreatedAt:     date,
			},
			CustomerName:  "Asha Nair",
			CustomerEmail: "asha@example.com",
			CustomerPhone: "9999999999",
			ItemTitle:     "Munnar Ridge Trek",
		},
	}

	f, err := BuildBookingsWorkbook(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.GetCellValue(exportSheet, "A1")
	if err != nil || got != "Booking ID" {
		t.Fatalf("expected header Booking ID, got %q err=%v", got, err)
	}
	if got, _ := f.GetCellValue(exportSheet, "A2"); got != "BK600123" {
		t.Fatalf("expected BK600123, got %q", got)
	}
	if got, _ := f.GetCellValue(exportSheet, "E2"); got != "Munnar Ridge Trek" {
		t.Fatalf("expected item title, got %q", got)
	}
	if got, _ := f.GetCellValue(exportSheet, "I2"); got != "10500" {
		t.Fatalf("expected total 10500, got %q", got)
	}
	if got, _ := f.GetCellValue(exportSheet, "J2"); got != "Pending" {
		t.Fatalf("expected status Pending, got %q", got)
	}
}

func TestBuildBookingsWorkbook_Empty(t *testing.T) {
	f, err := BuildBookingsWorkbook(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := f.GetCellValue(exportSheet, "A1"); got != "Booking ID" {
		t.Fatalf("expected headers even with no rows, got %q", got)
	}
	if got, _ := f.GetCellValue(exportSheet, "A2"); got != "" {
		t.Fatalf("expected empty data row, got %q", got)
	}
}
