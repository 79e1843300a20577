package notify

import (
	"context"
	"log"
)

// Event is the booking payload handed to notifier backends.
type Event struct {
	BookingRef    string `json:"bookingRef"`
	BookingType   string `json:"bookingType"`
	ItemTitle     string `json:"itemTitle"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Participants  int    `json:"participants"`
	BookingDate   string `json:"bookingDate"`
	TotalAmount   string `json:"totalAmount"`
	AdminNotes    string `json:"adminNotes,omitempty"`
}

// Notifier delivers booking lifecycle notices. BookingConfirmed fires exactly
// once per transition into Confirmed; BookingCreated alerts the back office
// about a new Pending booking. Delivery failures are logged by callers and
// never roll back the transaction that produced the event.
type Notifier interface {
	BookingCreated(ctx context.Context, ev Event) error
	BookingConfirmed(ctx context.Context, ev Event) error
}

// LogNotifier is the always-available backend: the simulated confirmation
// dispatch. No real email/SMS goes out.
type LogNotifier struct{}

func (LogNotifier) BookingCreated(_ context.Context, ev Event) error {
	log.Printf("notify: booking created ref=%s item=%q customer=%s total=%s", ev.BookingRef, ev.ItemTitle, ev.CustomerEmail, ev.TotalAmount)
	return nil
}

func (LogNotifier) BookingConfirmed(_ context.Context, ev Event) error {
	log.Printf("notify: booking confirmed ref=%s customer=%s (confirmation sent)", ev.BookingRef, ev.CustomerEmail)
	return nil
}

// Multi fans out to every configured backend. Errors are logged and swallowed;
// one broken channel must not block the others.
type Multi []Notifier

func (m Multi) BookingCreated(ctx context.Context, ev Event) error {
	for _, n := range m {
		if err := n.BookingCreated(ctx, ev); err != nil {
			log.Printf("notify: booking created delivery failed ref=%s err=%v", ev.BookingRef, err)
		}
	}
	return nil
}

func (m Multi) BookingConfirmed(ctx context.Context, ev Event) error {
	for _, n := range m {
		if err := n.BookingConfirmed(ctx, ev); err != nil {
			log.Printf("notify: booking confirmed delivery failed ref=%s err=%v", ev.BookingRef, err)
		}
	}
	return nil
}
