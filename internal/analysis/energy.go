package analysis

import (
	"fmt"
	"math"
)

const (
	// ActivityFactor converts basal to total daily expenditure
	ActivityFactor = 1.55

	// Adaptive thermogenesis starts after this many continuous deficit weeks
	ThermogenesisGraceWeeks = 4
	ThermogenesisPerWeek    = 15.0  // kcal
	ThermogenesisCap        = 200.0 // kcal
)

// KatchMcArdle returns basal metabolic rate (kcal) from fat-free mass (kg)
func KatchMcArdle(fatFreeMass float64) (float64, error) {
	if fatFreeMass <= 0 {
		return 0, fmt.Errorf("%w: fat-free mass %v must be positive", ErrInvalidInput, fatFreeMass)
	}
	return 370 + 21.6*fatFreeMass, nil
}

// TotalExpenditure returns TDEE: Katch–McArdle BMR times the activity factor
func TotalExpenditure(fatFreeMass float64) (float64, error) {
	bmr, err := KatchMcArdle(fatFreeMass)
	if err != nil {
		return 0, err
	}
	return bmr * ActivityFactor, nil
}

// AdaptiveThermogenesis returns the kcal to subtract after weeks of continuous deficit
func AdaptiveThermogenesis(weeksInDeficit int) (float64, error) {
	if weeksInDeficit < 0 {
		return 0, fmt.Errorf("%w: weeks in deficit %d must not be negative", ErrInvalidInput, weeksInDeficit)
	}
	if weeksInDeficit <= ThermogenesisGraceWeeks {
		return 0, nil
	}
	return math.Min(float64(weeksInDeficit-ThermogenesisGraceWeeks)*ThermogenesisPerWeek, ThermogenesisCap), nil
}
