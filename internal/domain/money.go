package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a currency amount in integer cents. All balance and item-value
// arithmetic happens in cents so the 2-decimal rounding the value formula
// requires is exact.
type Cents int64

// Dollars builds a Cents amount from a whole-dollar value.
func Dollars(d int) Cents {
	return Cents(d) * 100
}

// String renders the amount as a plain decimal string, e.g. "12.34".
// This is also the persisted form of the balance snapshot.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount the way the UI shows money: "$12", "$1.50K",
// "$2.30M".
func (c Cents) Format() string {
	v := float64(c) / 100
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.2fK", v/1_000)
	default:
		return fmt.Sprintf("$%d", int64(v))
	}
}

// ParseCents parses a decimal string ("123", "123.4", "123.45") into cents.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrSnapshotCorrupt)
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad amount %q", ErrSnapshotCorrupt, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad amount %q", ErrSnapshotCorrupt, s)
	}

	v := w*100 + f
	if neg {
		v = -v
	}
	return Cents(v), nil
}
