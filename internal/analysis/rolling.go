package analysis

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"physique-coach/internal/store"
)

// Standard window lengths in days
const (
	AcuteWindowDays   = 7
	ChronicWindowDays = 28
)

// Field selects one optional value from a measurement
type Field struct {
	Name string
	Get  func(store.Measurement) *float64
}

// Fields the aggregator is commonly asked for
var (
	WeightField        = Field{"weight", func(m store.Measurement) *float64 { return m.Weight }}
	BodyFatField       = Field{"body_fat", func(m store.Measurement) *float64 { return m.BodyFatFinal }}
	TrainingLoadField  = Field{"training_load", func(m store.Measurement) *float64 { return m.TrainingLoad }}
	HRVField           = Field{"hrv", func(m store.Measurement) *float64 { return m.HRV }}
	SleepScoreField    = Field{"sleep_score", func(m store.Measurement) *float64 { return m.SleepScore }}
	RecoveryHoursField = Field{"recovery_hours", func(m store.Measurement) *float64 { return m.RecoveryHours }}
	RestingHRField     = Field{"resting_hr", func(m store.Measurement) *float64 { return m.RestingHR }}
)

// WindowValues returns the present values of f for records dated within
// [ref − days + 1, ref]. Absent days are skipped, never filled.
func WindowValues(history []store.Measurement, f Field, ref time.Time, days int) ([]float64, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: window of %d days", ErrInvalidInput, days)
	}

	end := dayNumber(ref)
	start := end - days + 1

	var values []float64
	for _, m := range history {
		d := dayNumber(m.Date)
		if d < start || d > end {
			continue
		}
		if v := f.Get(m); v != nil {
			values = append(values, *v)
		}
	}
	return values, nil
}

// RollingMean returns the mean of f over the trailing window
func RollingMean(history []store.Measurement, f Field, ref time.Time, days int) (float64, error) {
	values, err := WindowValues(history, f, ref, days)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: no %s values in %d-day window", ErrInsufficientData, f.Name, days)
	}
	return stats.Mean(values)
}

// RollingStdDev returns the sample standard deviation of f over the trailing window
func RollingStdDev(history []store.Measurement, f Field, ref time.Time, days int) (float64, error) {
	values, err := WindowValues(history, f, ref, days)
	if err != nil {
		return 0, err
	}
	if len(values) < 2 {
		return 0, fmt.Errorf("%w: %d %s values in %d-day window, need 2", ErrInsufficientData, len(values), f.Name, days)
	}
	return stats.StandardDeviationSample(values)
}

// WindowStats summarises one field over one trailing window.
// Mean and StdDev are nil when the window holds too few samples.
type WindowStats struct {
	Field     string    `json:"field"`
	Days      int       `json:"days"`
	Reference time.Time `json:"reference"`
	Count     int       `json:"count"`
	Mean      *float64  `json:"mean"`
	StdDev    *float64  `json:"std_dev"`
}

// Rolling computes WindowStats for f. The only error is an invalid window length.
func Rolling(history []store.Measurement, f Field, ref time.Time, days int) (WindowStats, error) {
	values, err := WindowValues(history, f, ref, days)
	if err != nil {
		return WindowStats{}, err
	}

	ws := WindowStats{Field: f.Name, Days: days, Reference: CalendarDate(ref), Count: len(values)}
	if len(values) >= 1 {
		mean, err := stats.Mean(values)
		if err != nil {
			return WindowStats{}, err
		}
		ws.Mean = &mean
	}
	if len(values) >= 2 {
		sd, err := stats.StandardDeviationSample(values)
		if err != nil {
			return WindowStats{}, err
		}
		ws.StdDev = &sd
	}
	return ws, nil
}
