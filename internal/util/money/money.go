package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformed = errors.New("malformed amount")

// Format renders an amount as dollars rounded to two decimal places.
func Format(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Parse reads a non-negative amount typed by a customer.
func Parse(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrMalformed, s, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w %q: negative", ErrMalformed, s)
	}
	return amount, nil
}

// MustParse is Parse for amounts fixed at compile time.
func MustParse(s string) decimal.Decimal {
	amount, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return amount
}
