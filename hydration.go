package main

import (
	"errors"
	"math"
)

// defaultWaterNormMl is the daily intake target used when the user's weight
// is unknown (2 litres).
const defaultWaterNormMl = 2000

// errInvalidAmount is returned by addWater/removeWater for a non-positive
// delta. Handlers translate it to a 400.
var errInvalidAmount = errors.New("amount must be greater than zero")

// addWater returns the new cumulative amount after drinking delta ml.
// current is 0 when no record exists yet for the date.
func addWater(current, delta int) (int, error) {
	if delta <= 0 {
		return 0, errInvalidAmount
	}
	return current + delta, nil
}

// removeWater takes delta ml back off the day's cumulative amount. When delta
// reaches or exceeds the current amount the whole record is considered
// deleted — deleted=true tells the storage caller to drop the row rather than
// store a zero, keeping "no record" and "record at 0" distinct.
func removeWater(current, delta int) (remaining int, deleted bool, err error) {
	if delta <= 0 {
		return 0, false, errInvalidAmount
	}
	if delta >= current {
		return 0, true, nil
	}
	return current - delta, false, nil
}

// waterNorm computes the personalized daily intake target: 30 ml per kg of
// body weight, or defaultWaterNormMl when the weight is unknown.
func waterNorm(weightKG *float64) int {
	if weightKG == nil || *weightKG <= 0 {
		return defaultWaterNormMl
	}
	return int(math.Round(*weightKG * 30))
}

// waterProgress is the norm-completion percentage, clamped at 100. A norm of
// zero or less cannot come from waterNorm but is guarded anyway: any intake
// against no target counts as done (100), no intake as 0.
func waterProgress(amountMl, normMl int) int {
	if normMl <= 0 {
		if amountMl > 0 {
			return 100
		}
		return 0
	}
	pct := int(math.Round(float64(amountMl) * 100 / float64(normMl)))
	if pct > 100 {
		return 100
	}
	return pct
}
