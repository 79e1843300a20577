package booking

import (
	"fmt"
	"time"
)

type Type string

const (
	TypePackage Type = "package"
	TypeTrail   Type = "trail"
	TypeEcoStay Type = "eco_stay"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePackage, TypeTrail, TypeEcoStay:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown booking type: %s", s)
	}
}

// Target is the tagged union of the three catalog references. Modelling it
// this way keeps the "exactly one FK set" rule out of runtime checks: the
// discriminator picks the column at insert time.
type Target struct {
	Type   Type   `json:"type"`
	ItemID string `json:"itemId"`
}

// Column maps the discriminator to the bookings FK column.
func (t Target) Column() (string, error) {
	switch t.Type {
	case TypePackage:
		return "package_id", nil
	case TypeTrail:
		return "trail_id", nil
	case TypeEcoStay:
		return "eco_stay_id", nil
	default:
		return "", fmt.Errorf("unknown booking type: %s", t.Type)
	}
}

type Booking struct {
	ID               string        `json:"id"`
	Ref              string        `json:"bookingId"`
	UserID           string        `json:"userId"`
	Target           Target        `json:"target"`
	Participants     int           `json:"participants"`
	Date             time.Time     `json:"bookingDate"`
	SpecialRequests  string        `json:"specialRequests,omitempty"`
	TotalAmount      string        `json:"totalAmount"`
	Status           Status        `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	AdminNotes       string        `json:"adminNotes,omitempty"`
	ConfirmationSent bool          `json:"confirmationSent"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// AdminRow is the back-office listing shape: a booking joined with its
// customer and the booked item's display title.
type AdminRow struct {
	Booking

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	ItemTitle     string `json:"itemTitle"`
}
