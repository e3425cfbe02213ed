// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and their decimal representation.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount held as integer cents. The sign is meaningful only for
// derived values such as a balance; transaction amounts are always positive.
type Money struct {
	Cents int64
}

// maxCents keeps amounts far from int64 overflow when summed.
const maxCents = int64(1) << 53

// ParseAmount converts a decimal string to Money with half-up rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rejects
// explicit signs, blanks, zero and anything that is not a finite number.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,345") -> 1235 cents
//	ParseAmount("4.5")    -> 450 cents
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).Round(0)
	if !cents.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	if cents.GreaterThan(decimal.NewFromInt(maxCents)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Validate reports ErrInvalidAmount unless m is a positive amount.
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > maxCents {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal returns the exact decimal value of m.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// String renders the shortest exact decimal, e.g. 4.5 or 1000.
func (m Money) String() string {
	return m.Decimal().String()
}

// MarshalJSON encodes m as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number of whole cents only. Negative values are
// kept so that a balance can round-trip; positivity of amounts is checked by
// Validate. Values with sub-cent digits or beyond maxCents are rejected
// rather than rounded.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil || len(data) == 0 || data[0] == '"' {
		return fmt.Errorf("amount must be a JSON number, got %s", string(data))
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", num.String(), err)
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Round(0)) {
		return fmt.Errorf("amount %s has fractional cents", num.String())
	}
	if cents.Abs().GreaterThan(decimal.NewFromInt(maxCents)) {
		return fmt.Errorf("amount %s out of range", num.String())
	}
	m.Cents = cents.IntPart()
	return nil
}
