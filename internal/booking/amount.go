package booking

import "github.com/shopspring/decimal"

// Total computes the booking amount from the server-side unit price. The
// client never supplies a total; whatever it displays is recomputed here from
// the catalog row at submission time.
func Total(unitPrice decimal.Decimal, participants int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(participants)))
}
