package booking

import (
	"strconv"
	"time"
)

// NewRef generates the human-readable booking reference shown to customers:
// "BK" plus the last six digits of the current unix-millisecond clock.
// Uniqueness is probabilistic; the unique index on bookings.booking_ref turns
// a collision into an insert error instead of a silent overwrite.
func NewRef(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "BK" + ms
}
