package analysis

import (
	"fmt"
	"time"

	"physique-coach/internal/store"
)

// ACWRZone classifies the acute:chronic workload ratio
type ACWRZone string

const (
	ZoneUnderTraining ACWRZone = "under_training"
	ZoneOptimal       ACWRZone = "optimal"
	ZoneCaution       ACWRZone = "caution"
	ZoneHighRisk      ACWRZone = "high_risk"
)

// ClassifyACWR maps a ratio to its zone
func ClassifyACWR(ratio float64) ACWRZone {
	switch {
	case ratio < 0.8:
		return ZoneUnderTraining
	case ratio <= 1.3:
		return ZoneOptimal
	case ratio <= 1.5:
		return ZoneCaution
	default:
		return ZoneHighRisk
	}
}

// ACWRResult is the workload ratio with its inputs
type ACWRResult struct {
	Ratio         float64  `json:"ratio"`
	Zone          ACWRZone `json:"zone"`
	AcuteMean     float64  `json:"acute_mean"`
	ChronicMean   float64  `json:"chronic_mean"`
	LowConfidence bool     `json:"low_confidence"` // history shorter than the chronic window
}

// ACWRFromMeans divides the 7-day by the 28-day mean load
func ACWRFromMeans(acute, chronic float64) (float64, error) {
	if chronic <= 0 {
		return 0, fmt.Errorf("%w: chronic load mean is %v", ErrInsufficientData, chronic)
	}
	if acute < 0 {
		return 0, fmt.Errorf("%w: acute load mean %v", ErrInvalidInput, acute)
	}
	return acute / chronic, nil
}

// ACWR computes the acute:chronic workload ratio at ref from recorded training load
func ACWR(history []store.Measurement, ref time.Time) (ACWRResult, error) {
	acute, err := RollingMean(history, TrainingLoadField, ref, AcuteWindowDays)
	if err != nil {
		return ACWRResult{}, err
	}
	chronic, err := RollingMean(history, TrainingLoadField, ref, ChronicWindowDays)
	if err != nil {
		return ACWRResult{}, err
	}
	ratio, err := ACWRFromMeans(acute, chronic)
	if err != nil {
		return ACWRResult{}, err
	}

	res := ACWRResult{Ratio: ratio, Zone: ClassifyACWR(ratio), AcuteMean: acute, ChronicMean: chronic}

	first := -1
	for _, m := range history {
		if m.TrainingLoad == nil || dayNumber(m.Date) > dayNumber(ref) {
			continue
		}
		if d := dayNumber(m.Date); first < 0 || d < first {
			first = d
		}
	}
	res.LowConfidence = dayNumber(ref)-first+1 < ChronicWindowDays
	return res, nil
}

// HRVStability classifies the coefficient of variation of HRV
type HRVStability string

const (
	HRVStable   HRVStability = "stable"
	HRVVariable HRVStability = "variable"
	HRVUnstable HRVStability = "unstable"
)

// ClassifyCV maps a CV-HRV percentage to its stability label
func ClassifyCV(cv float64) HRVStability {
	switch {
	case cv <= 7:
		return HRVStable
	case cv <= 10:
		return HRVVariable
	default:
		return HRVUnstable
	}
}

// CVResult is the 7-day coefficient of variation of HRV
type CVResult struct {
	CV        float64      `json:"cv"`
	Stability HRVStability `json:"stability"`
	Samples   int          `json:"samples"`
}

// HRVVariation returns (7-day SD / 7-day mean) × 100 of nocturnal HRV
func HRVVariation(history []store.Measurement, ref time.Time) (CVResult, error) {
	values, err := WindowValues(history, HRVField, ref, AcuteWindowDays)
	if err != nil {
		return CVResult{}, err
	}
	sd, err := RollingStdDev(history, HRVField, ref, AcuteWindowDays)
	if err != nil {
		return CVResult{}, err
	}
	mean, err := RollingMean(history, HRVField, ref, AcuteWindowDays)
	if err != nil {
		return CVResult{}, err
	}
	if mean <= 0 {
		return CVResult{}, fmt.Errorf("%w: mean HRV %v", ErrInvalidInput, mean)
	}

	cv := sd / mean * 100
	return CVResult{CV: cv, Stability: ClassifyCV(cv), Samples: len(values)}, nil
}

// Fatigue signal names
const (
	SignalHRVDrop  = "hrv_drop"
	SignalSleep    = "sleep"
	SignalRecovery = "recovery_time"
	SignalLoad     = "load"
	SignalACWR     = "acwr"
	SignalCVHRV    = "cv_hrv"
)

// Fatigue thresholds
const (
	HRVDropThresholdPct    = 10.0
	SleepScoreThreshold    = 70.0
	RecoveryHoursMax       = 48.0
	ACWRHighRisk           = 1.5
	CVHRVUnstableThreshold = 10.0
)

// FatigueInput carries today's recovery signals. Nil means not measured.
type FatigueInput struct {
	HRV           *float64
	BaselineHRV   *float64
	SleepScore    *float64
	RecoveryHours *float64
	ACWR          *float64
	CVHRV         *float64
}

// Prescription is the training adjustment for a fatigue score
type Prescription string

const (
	PrescriptionNormal       Prescription = "normal"
	PrescriptionMonitor      Prescription = "monitor"
	PrescriptionReduceVolume Prescription = "reduce_volume"
	PrescriptionDeload       Prescription = "deload"
)

// Description returns the coaching text for a prescription
func (p Prescription) Description() string {
	switch p {
	case PrescriptionNormal:
		return "Normal training"
	case PrescriptionMonitor:
		return "Moderate fatigue: monitor"
	case PrescriptionReduceVolume:
		return "Reduce volume by 30%"
	case PrescriptionDeload:
		return "Active rest / deload"
	default:
		return string(p)
	}
}

// PrescriptionFor maps a 0–4 fatigue score to a prescription
func PrescriptionFor(score int) Prescription {
	switch {
	case score <= 0:
		return PrescriptionNormal
	case score == 1:
		return PrescriptionMonitor
	case score == 2:
		return PrescriptionReduceVolume
	default:
		return PrescriptionDeload
	}
}

// FatigueScore is the composite 0–4 score
type FatigueScore struct {
	Score        int          `json:"score"`
	Triggered    []string     `json:"triggered"`
	Unevaluated  []string     `json:"unevaluated"`
	Prescription Prescription `json:"prescription"`
}

// ScoreFatigue adds one point per triggered signal: HRV more than 10% below
// baseline, sleep score under 70, recovery over 48h, and ACWR above 1.5 or
// CV-HRV above 10% (one point even if both hold). Unmeasured signals are
// listed as unevaluated and score nothing.
func ScoreFatigue(in FatigueInput) FatigueScore {
	var fs FatigueScore
	hit := func(signal string) {
		fs.Score++
		fs.Triggered = append(fs.Triggered, signal)
	}

	if in.HRV != nil && in.BaselineHRV != nil && *in.BaselineHRV > 0 {
		if (*in.BaselineHRV-*in.HRV) / *in.BaselineHRV * 100 > HRVDropThresholdPct {
			hit(SignalHRVDrop)
		}
	} else {
		fs.Unevaluated = append(fs.Unevaluated, SignalHRVDrop)
	}

	if in.SleepScore != nil {
		if *in.SleepScore < SleepScoreThreshold {
			hit(SignalSleep)
		}
	} else {
		fs.Unevaluated = append(fs.Unevaluated, SignalSleep)
	}

	if in.RecoveryHours != nil {
		if *in.RecoveryHours > RecoveryHoursMax {
			hit(SignalRecovery)
		}
	} else {
		fs.Unevaluated = append(fs.Unevaluated, SignalRecovery)
	}

	acwrHigh := in.ACWR != nil && *in.ACWR > ACWRHighRisk
	cvHigh := in.CVHRV != nil && *in.CVHRV > CVHRVUnstableThreshold
	switch {
	case acwrHigh || cvHigh:
		hit(SignalLoad)
	default:
		if in.ACWR == nil {
			fs.Unevaluated = append(fs.Unevaluated, SignalACWR)
		}
		if in.CVHRV == nil {
			fs.Unevaluated = append(fs.Unevaluated, SignalCVHRV)
		}
	}

	fs.Prescription = PrescriptionFor(fs.Score)
	return fs
}
