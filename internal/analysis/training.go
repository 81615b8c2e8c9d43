package analysis

import (
	"fmt"
	"slices"
)

// VolumeBand is weekly working sets per muscle group
type VolumeBand struct {
	MEV int `json:"mev"`
	MAV int `json:"mav"`
	MRV int `json:"mrv"`
}

// RIRRange is the target repetitions-in-reserve on working sets
type RIRRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TrainingPrescription is the phase's volume and intensity guidance
type TrainingPrescription struct {
	Phase          Phase      `json:"phase"`
	Volume         VolumeBand `json:"volume"`
	RIR            *RIRRange  `json:"rir"` // nil when no target applies
	RepsMin        int        `json:"reps_min"`
	RepsMax        int        `json:"reps_max"`
	RestSeconds    int        `json:"rest_seconds"`
	Techniques     []string   `json:"techniques,omitempty"`
	ProgressionPct float64    `json:"progression_pct"` // weekly load increase
}

var trainingTable = map[Phase]TrainingPrescription{
	PhaseBulking: {
		Volume:         VolumeBand{10, 18, 22},
		RIR:            &RIRRange{1, 2},
		RepsMin:        8,
		RepsMax:        12,
		RestSeconds:    90,
		Techniques:     []string{"rest-pause", "drop set"},
		ProgressionPct: 2.5,
	},
	PhaseCutting: {
		Volume:      VolumeBand{6, 10, 14},
		RIR:         &RIRRange{0, 1},
		RepsMin:     6,
		RepsMax:     8,
		RestSeconds: 120,
		Techniques:  []string{"antagonist superset"},
	},
	PhasePeakWeek: {
		Volume:      VolumeBand{4, 7, 10},
		RIR:         &RIRRange{3, 4},
		RepsMin:     12,
		RepsMax:     15,
		RestSeconds: 60,
	},
	PhaseRecomposition: {
		Volume:         VolumeBand{8, 14, 18},
		RIR:            &RIRRange{1, 2},
		RepsMin:        10,
		RepsMax:        12,
		RestSeconds:    75,
		Techniques:     []string{"superset", "rest-pause"},
		ProgressionPct: 2.0,
	},
	PhaseOffSeason: {
		Volume:         VolumeBand{4, 8, 12},
		RepsMin:        8,
		RepsMax:        12,
		RestSeconds:    90,
		ProgressionPct: 2.5,
	},
}

// PrescribeTraining looks up the volume band and intensity targets for a phase
func PrescribeTraining(phase Phase) (TrainingPrescription, error) {
	tp, ok := trainingTable[phase]
	if !ok {
		return TrainingPrescription{}, fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, phase)
	}
	tp.Phase = phase
	// The table is shared; hand out copies of its reference fields
	if tp.RIR != nil {
		rir := *tp.RIR
		tp.RIR = &rir
	}
	tp.Techniques = slices.Clone(tp.Techniques)
	return tp, nil
}

// WeeklyGainRate returns the expected weekly bulking gain as % of bodyweight,
// tiered by training age in years.
func WeeklyGainRate(trainingYears float64) (float64, error) {
	switch {
	case trainingYears < 0:
		return 0, fmt.Errorf("%w: training age %v", ErrInvalidInput, trainingYears)
	case trainingYears <= 2:
		return 0.5, nil
	case trainingYears < 5:
		return 0.35, nil
	default:
		return 0.25, nil
	}
}
