package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TickSize converts between integer tick prices used by the engine and
// decimal prices shown to humans.
type TickSize struct {
	size decimal.Decimal
}

// ParseTickSize parses a positive decimal tick size such as "0.01".
func ParseTickSize(s string) (TickSize, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return TickSize{}, fmt.Errorf("parse tick size %q: %w", s, err)
	}
	if !d.IsPositive() {
		return TickSize{}, fmt.Errorf("tick size must be greater than 0, got %s", s)
	}
	return TickSize{size: d}, nil
}

// MustTickSize is like ParseTickSize but panics on error. Intended for
// constants and tests.
func MustTickSize(s string) TickSize {
	ts, err := ParseTickSize(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String returns the tick size in decimal form.
func (t TickSize) String() string {
	return t.size.String()
}

// ToPrice converts an integer tick count to a decimal price.
func (t TickSize) ToPrice(ticks int64) decimal.Decimal {
	return t.size.Mul(decimal.NewFromInt(ticks))
}

// FormatTicks renders ticks as a decimal price string with the tick
// size's precision, e.g. 50010 ticks at 0.01 → "500.10".
func (t TickSize) FormatTicks(ticks int64) string {
	places := -t.size.Exponent()
	if places < 0 {
		places = 0
	}
	return t.ToPrice(ticks).StringFixed(places)
}

// ToTicks converts a decimal price to ticks. It returns an error if the
// price is not an exact multiple of the tick size.
func (t TickSize) ToTicks(price decimal.Decimal) (int64, error) {
	q := price.Div(t.size)
	if !q.Equal(q.Truncate(0)) {
		return 0, fmt.Errorf("price %s is not a multiple of tick size %s", price, t.size)
	}
	return q.IntPart(), nil
}
