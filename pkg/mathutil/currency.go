// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp bounds val to [lo, hi]. NaN clamps to lo.
func Clamp(val, lo, hi float64) float64 {
	if math.IsNaN(val) || val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// NonNegative returns val, or 0 when val is negative, NaN or infinite.
func NonNegative(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		return 0
	}
	return val
}

// Bound returns val clamped to [0, hi]; NaN and infinities become 0.
func Bound(val, hi float64) float64 {
	return Clamp(NonNegative(val), 0, hi)
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// MonthlyRate converts an annual percentage to a monthly fraction.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}
