package analysis

import (
	"errors"
	"testing"
)

func TestPrescribeTraining(t *testing.T) {
	tests := []struct {
		phase  Phase
		volume VolumeBand
		rir    *RIRRange
	}{
		{PhaseBulking, VolumeBand{10, 18, 22}, &RIRRange{1, 2}},
		{PhaseCutting, VolumeBand{6, 10, 14}, &RIRRange{0, 1}},
		{PhasePeakWeek, VolumeBand{4, 7, 10}, &RIRRange{3, 4}},
		{PhaseRecomposition, VolumeBand{8, 14, 18}, &RIRRange{1, 2}},
		{PhaseOffSeason, VolumeBand{4, 8, 12}, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			got, err := PrescribeTraining(tt.phase)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Phase != tt.phase {
				t.Errorf("Phase = %s, want %s", got.Phase, tt.phase)
			}
			if got.Volume != tt.volume {
				t.Errorf("Volume = %+v, want %+v", got.Volume, tt.volume)
			}
			if (got.RIR == nil) != (tt.rir == nil) || (got.RIR != nil && *got.RIR != *tt.rir) {
				t.Errorf("RIR = %v, want %v", got.RIR, tt.rir)
			}
			if got.Volume.MEV > got.Volume.MAV || got.Volume.MAV > got.Volume.MRV {
				t.Errorf("volume band not ordered: %+v", got.Volume)
			}
		})
	}

	if _, err := PrescribeTraining("unknown"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestPrescribeTraining_ResultsAreIndependent(t *testing.T) {
	first, err := PrescribeTraining(PhaseBulking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.RIR.Min = 99
	first.Techniques[0] = "changed"

	second, err := PrescribeTraining(PhaseBulking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.RIR.Min != 1 || second.RIR.Max != 2 {
		t.Errorf("RIR = %+v, want {1 2}", *second.RIR)
	}
	if second.Techniques[0] != "rest-pause" {
		t.Errorf("techniques = %v, want rest-pause first", second.Techniques)
	}
}

func TestWeeklyGainRate(t *testing.T) {
	tests := []struct {
		years    float64
		expected float64
	}{
		{0, 0.5},
		{2, 0.5},
		{2.5, 0.35},
		{4, 0.35},
		{4.9, 0.35},
		{5, 0.25},
		{12, 0.25},
	}

	for _, tt := range tests {
		got, err := WeeklyGainRate(tt.years)
		if err != nil {
			t.Fatalf("WeeklyGainRate(%v) error: %v", tt.years, err)
		}
		if got != tt.expected {
			t.Errorf("WeeklyGainRate(%v) = %v, want %v", tt.years, got, tt.expected)
		}
	}

	if _, err := WeeklyGainRate(-1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
