package money

import "github.com/shopspring/decimal"

// NoAmount is displayed when the upstream response omits a monetary value.
const NoAmount = "—"

// Format renders an amount as a euro string with two decimal places.
func Format(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}

// FormatFloat renders a raw float amount as euros.
func FormatFloat(amount float64) string {
	return Format(decimal.NewFromFloat(amount))
}

// FormatOrDash renders the amount when present and the dash placeholder otherwise.
func FormatOrDash(amount *float64) string {
	if amount == nil {
		return NoAmount
	}
	return FormatFloat(*amount)
}

// LineTotal multiplies a unit price by a quantity without float drift.
func LineTotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}
