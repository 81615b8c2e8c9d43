package analysis

import (
	"fmt"
	"sort"
	"time"

	"physique-coach/internal/store"
)

const (
	// RateWindowDays is the look-back for the weekly weight-change rate
	RateWindowDays = 14
	// PlateauThreshold is the weekly loss (% bodyweight) below which progress stalls
	PlateauThreshold = 0.5
	// PlateauGapDays separates the two evaluations that must both stall
	PlateauGapDays = 7
	// PlateauMaxGapDays bounds that separation so both windows are consecutive
	PlateauMaxGapDays = 2*PlateauGapDays - 1
)

// WeeklyWeightChangeRate returns ((P(−14) − P(now)) / P(−14)) × 50, the weekly
// loss as % of bodyweight. P(−14) and P(now) are the earliest and latest
// weights in [ref − 14, ref], which must be at least 7 days apart.
func WeeklyWeightChangeRate(history []store.Measurement, ref time.Time) (float64, error) {
	end := dayNumber(ref)
	start := end - RateWindowDays

	var first, last *store.Measurement
	for i := range history {
		m := &history[i]
		d := dayNumber(m.Date)
		if m.Weight == nil || d < start || d > end {
			continue
		}
		if first == nil || d < dayNumber(first.Date) {
			first = m
		}
		if last == nil || d > dayNumber(last.Date) {
			last = m
		}
	}

	if first == nil || last == nil || DaysBetween(first.Date, last.Date) < PlateauGapDays {
		return 0, fmt.Errorf("%w: need weights at least %d days apart within %d days", ErrInsufficientData, PlateauGapDays, RateWindowDays)
	}
	if *first.Weight <= 0 {
		return 0, fmt.Errorf("%w: weight %v must be positive", ErrInvalidInput, *first.Weight)
	}

	return (*first.Weight - *last.Weight) / *first.Weight * 50, nil
}

// DetectPlateau reports a plateau when the latest evaluation and the latest
// one at least a week older are both below PlateauThreshold. The older one
// must fall in the preceding week, 7 to 13 days before the latest.
func DetectPlateau(evals []store.RateEvaluation) (bool, error) {
	if len(evals) == 0 {
		return false, fmt.Errorf("%w: no rate evaluations", ErrInsufficientData)
	}

	sorted := make([]store.RateEvaluation, len(evals))
	copy(sorted, evals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	latest := sorted[len(sorted)-1]
	for i := len(sorted) - 2; i >= 0; i-- {
		gap := DaysBetween(sorted[i].Date, latest.Date)
		if gap > PlateauMaxGapDays {
			break
		}
		if gap >= PlateauGapDays {
			return latest.RatePct < PlateauThreshold && sorted[i].RatePct < PlateauThreshold, nil
		}
	}
	return false, fmt.Errorf("%w: need two evaluations %d to %d days apart", ErrInsufficientData, PlateauGapDays, PlateauMaxGapDays)
}
