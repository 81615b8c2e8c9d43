package analysis

import (
	"time"

	"physique-coach/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// series builds one measurement per day ending at end, oldest first.
// A nil entry produces a record with the field absent.
func series(end time.Time, set func(*store.Measurement, float64), values ...*float64) []store.Measurement {
	out := make([]store.Measurement, 0, len(values))
	for i, v := range values {
		m := store.Measurement{Date: end.AddDate(0, 0, i-len(values)+1)}
		if v != nil {
			set(&m, *v)
		}
		out = append(out, m)
	}
	return out
}

func setLoad(m *store.Measurement, v float64)   { m.TrainingLoad = &v }
func setHRV(m *store.Measurement, v float64)    { m.HRV = &v }
func setWeight(m *store.Measurement, v float64) { m.Weight = &v }
