package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	pricePattern  = regexp.MustCompile(`^\d{1,9}(\.\d{1,2})?$`)
	currencyLabel = regexp.MustCompile(`(?is)^\s*(aed\s*)?(.*?)(\s*aed)?\s*$`)

	ErrInvalidPrice = errors.New("invalid price")
)

// NormalizePrice accepts a non-negative amount with at most two decimals and
// an optional AED label, and returns it as a two-decimal string plus the same
// amount in minor units (fils).
func NormalizePrice(raw string) (string, int64, error) {
	m := currencyLabel.FindStringSubmatch(raw)
	if m == nil {
		return "", 0, ErrInvalidPrice
	}
	amount := strings.TrimSpace(m[2])
	if !pricePattern.MatchString(amount) {
		return "", 0, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", 0, ErrInvalidPrice
	}
	return d.StringFixed(2), d.Shift(2).IntPart(), nil
}
