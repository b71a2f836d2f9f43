// Package core defines the entry model and the pure validation and
// normalization rules applied at creation and edit time.
//
// This file contains amount parsing: user input may use either a comma
// or a dot as the decimal separator, and stored amounts always carry at
// most two fractional digits.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount parses a user-entered amount string into a float64
// rounded to two fractional digits.
//
// Whitespace is trimmed and a comma decimal separator is normalized to
// a dot before parsing. Rounding is half away from zero at the cent
// boundary. Returns ErrInvalidAmount when the input does not parse to
// a finite number.
//
// Examples:
//
//	NormalizeAmount("10,5")   -> 10.5, nil
//	NormalizeAmount("10,555") -> 10.56, nil
//	NormalizeAmount("12.345") -> 12.35, nil
func NormalizeAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Round(2).Float64()
	return f, nil
}

// Round2 rounds an already-numeric amount to two fractional digits,
// half away from zero. Used to keep the two-digit invariant after
// arithmetic on stored amounts.
func Round2(f float64) float64 {
	r, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return r
}
