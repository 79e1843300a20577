package audit

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionBookingStatusChange Action = "BOOKING_STATUS_CHANGE"
)

// Entry is one back-office action, recorded in the same transaction as the
// change it describes.
type Entry struct {
	ID        string          `json:"id"`
	AdminID   string          `json:"adminId"`
	BookingID string          `json:"bookingId,omitempty"`
	Action    Action          `json:"action"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
