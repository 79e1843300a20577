package booking

import "fmt"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// Cancelled and Completed are terminal; nothing leaves them.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCompleted: true},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ConfirmationAfter reports the confirmation_sent value after a transition to
// next, and whether the confirmation notice fires. Entering Confirmed flips
// the flag and notifies; every other transition preserves the flag and stays
// silent. The transition table keeps Confirmed unreachable from itself, so
// the notice fires at most once per booking.
func ConfirmationAfter(next Status, sent bool) (bool, bool) {
	if next == StatusConfirmed {
		return true, true
	}
	return sent, false
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)
