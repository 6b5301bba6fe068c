package inputval

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Messages for price-like fields.
var (
	ErrAmountRequired = errors.New("Champ obligatoire")
	ErrAmountInvalid  = errors.New("Doit être un nombre positif")
)

var amountSpaces = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// ParseAmount reads a non-negative amount typed in a form. Grouping spaces
// are ignored and a comma may be used as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = amountSpaces.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Decimal{}, ErrAmountRequired
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ErrAmountInvalid
	}
	return d, nil
}

// ParseOptionalAmount is ParseAmount for fields that may be left blank;
// blank yields nil.
func ParseOptionalAmount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// AmountOrZero is ParseAmount where blank means zero.
func AmountOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}
