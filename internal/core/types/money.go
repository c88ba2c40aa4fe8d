// Package types provides common type aliases and monetary utilities.
package types

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinorUnits represents a monetary value in minor currency units (cents).
// Storage: int64 - sufficient for ±92 quadrillion minor units.
// Example: 123.45 → 12345
type MinorUnits int64

// NewMinorUnitsFromMajor creates MinorUnits from a major unit amount.
func NewMinorUnitsFromMajor(major float64) MinorUnits {
	return MinorUnits(math.Round(major * 100))
}

// ToMajor converts minor units back to major units for display.
func (m MinorUnits) ToMajor() float64 {
	return float64(m) / 100
}

// String formats as a major-unit decimal string, e.g. "22.00".
func (m MinorUnits) String() string {
	neg := m < 0
	v := m
	if neg {
		v = -v
	}
	if neg {
		return fmt.Sprintf("-%d.%02d", int64(v)/100, int64(v)%100)
	}
	return fmt.Sprintf("%d.%02d", int64(v)/100, int64(v)%100)
}

func (m MinorUnits) IsZero() bool     { return m == 0 }
func (m MinorUnits) IsPositive() bool { return m > 0 }
func (m MinorUnits) IsNegative() bool { return m < 0 }
func (m MinorUnits) Neg() MinorUnits  { return -m }

// TaxRate is a fractional tax rate, e.g. 0.10 for 10%.
// decimal.Decimal avoids float drift when applied to minor units.
type TaxRate = decimal.Decimal

// ParseTaxRate parses a rate string like "0.10".
func ParseTaxRate(s string) (TaxRate, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse tax rate %q: %w", s, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("tax rate %s out of range [0,1]", rate)
	}
	return rate, nil
}

// MustTaxRate parses a rate string, panics on error. Use only for constants and tests.
func MustTaxRate(s string) TaxRate {
	rate, err := ParseTaxRate(s)
	if err != nil {
		panic(err)
	}
	return rate
}

// Tax computes the tax for a subtotal at the given rate, rounded
// half-up to the nearest minor unit.
func Tax(subtotal MinorUnits, rate TaxRate) MinorUnits {
	tax := decimal.NewFromInt(int64(subtotal)).Mul(rate).Round(0)
	return MinorUnits(tax.IntPart())
}
