package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"physique-coach/internal/store"
)

func TestSiriRoundTrip(t *testing.T) {
	for bf := 3.0; bf <= 45; bf += 0.5 {
		dc, err := SiriDensity(bf)
		if err != nil {
			t.Fatalf("SiriDensity(%v) error: %v", bf, err)
		}
		got, err := SiriBodyFat(dc)
		if err != nil {
			t.Fatalf("SiriBodyFat(%v) error: %v", dc, err)
		}
		if math.Abs(got-bf) > 1e-9 {
			t.Errorf("round trip %v -> %v -> %v", bf, dc, got)
		}
	}
}

func TestSiriBodyFat_Invalid(t *testing.T) {
	for _, dc := range []float64{0, -1.05} {
		if _, err := SiriBodyFat(dc); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("SiriBodyFat(%v) error = %v, want ErrInvalidInput", dc, err)
		}
	}
}

func TestFatMassAndFatFreeMass(t *testing.T) {
	fm, err := FatMass(80, 12.5)
	if err != nil {
		t.Fatalf("FatMass error: %v", err)
	}
	if math.Abs(fm-10) > 1e-9 {
		t.Errorf("FatMass = %v, want 10", fm)
	}

	ffm, err := FatFreeMass(80, 12.5)
	if err != nil {
		t.Fatalf("FatFreeMass error: %v", err)
	}
	if math.Abs(ffm-70) > 1e-9 {
		t.Errorf("FatFreeMass = %v, want 70", ffm)
	}

	if _, err := FatMass(0, 12); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("FatMass(0, 12) error = %v, want ErrInvalidInput", err)
	}
	if _, err := FatMass(80, 120); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("FatMass(80, 120) error = %v, want ErrInvalidInput", err)
	}
}

func TestPhaseAngle(t *testing.T) {
	got, err := PhaseAngle(60, 500)
	if err != nil {
		t.Fatalf("PhaseAngle error: %v", err)
	}
	if math.Abs(got-6.8428) > 0.001 {
		t.Errorf("PhaseAngle(60, 500) = %v, want 6.8428", got)
	}

	for _, r := range []float64{0, -10} {
		if _, err := PhaseAngle(60, r); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("PhaseAngle(60, %v) error = %v, want ErrInvalidInput", r, err)
		}
	}
}

func TestWaterRatio(t *testing.T) {
	got, err := WaterRatio(28, 17.5)
	if err != nil {
		t.Fatalf("WaterRatio error: %v", err)
	}
	if math.Abs(got-1.6) > 1e-9 {
		t.Errorf("WaterRatio = %v, want 1.6", got)
	}
	if _, err := WaterRatio(28, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("WaterRatio with zero ECW error = %v, want ErrInvalidInput", err)
	}
}

func TestResolveBodyFat(t *testing.T) {
	tests := []struct {
		name        string
		m           store.Measurement
		expected    float64
		sources     int
		expectedErr error
	}{
		{
			name: "manual override wins",
			m: store.Measurement{
				BodyFatScale:  floatPtr(14),
				BodyFatFinal:  floatPtr(11),
				BodyFatManual: true,
			},
			expected: 11,
			sources:  1,
		},
		{
			name: "scale and caliper averaged",
			m: store.Measurement{
				BodyFatScale:   floatPtr(14),
				BodyFatCaliper: floatPtr(10),
			},
			expected: 12,
			sources:  2,
		},
		{
			name: "stale final ignored without manual flag",
			m: store.Measurement{
				BodyFatScale: floatPtr(14),
				BodyFatFinal: floatPtr(20),
			},
			expected: 14,
			sources:  1,
		},
		{
			name: "skinfolds join the blend",
			m: store.Measurement{
				BodyFatScale: floatPtr(10),
				Skinfolds: store.Skinfolds{
					Chest:   floatPtr(8),
					Abdomen: floatPtr(12),
					Thigh:   floatPtr(10),
				},
			},
			// JP3 male, S=30, age 25 -> 8.51%
			expected: (10 + 8.5099) / 2,
			sources:  2,
		},
		{
			name:        "nothing to resolve",
			m:           store.Measurement{Weight: floatPtr(80)},
			expectedErr: ErrMissingInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBodyFat(tt.m, store.SexMale, 25)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("error = %v, want %v", err, tt.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Value-tt.expected) > 0.01 {
				t.Errorf("Value = %v, want %v", got.Value, tt.expected)
			}
			if len(got.Sources) != tt.sources {
				t.Errorf("Sources = %v, want %d entries", got.Sources, tt.sources)
			}
		})
	}
}

func TestDeriveMeasurement(t *testing.T) {
	m := store.Measurement{
		Weight:             floatPtr(80),
		BodyFatScale:       floatPtr(12.5),
		Resistance:         floatPtr(500),
		Reactance:          floatPtr(60),
		IntracellularWater: floatPtr(28),
	}

	d, err := DeriveMeasurement(m, store.SexMale, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.BodyFatFinal == nil || *d.BodyFatFinal != 12.5 {
		t.Errorf("BodyFatFinal = %v, want 12.5", d.BodyFatFinal)
	}
	if d.FatFreeMass == nil || math.Abs(*d.FatFreeMass-70) > 1e-9 {
		t.Errorf("FatFreeMass = %v, want 70", d.FatFreeMass)
	}
	if d.PhaseAngle == nil {
		t.Error("PhaseAngle should be derived")
	}
	if d.WaterRatio != nil {
		t.Errorf("WaterRatio should be nil without ECW, got %v", *d.WaterRatio)
	}

	d.Apply(&m)
	if m.FatMass == nil || math.Abs(*m.FatMass-10) > 1e-9 {
		t.Errorf("Apply did not copy FatMass: %v", m.FatMass)
	}
}

func TestDeriveMeasurement_InvalidKeepsOtherFields(t *testing.T) {
	m := store.Measurement{
		Weight:             floatPtr(80),
		BodyFatScale:       floatPtr(15),
		IntracellularWater: floatPtr(28),
		ExtracellularWater: floatPtr(0),
	}

	d, err := DeriveMeasurement(m, store.SexMale, 30)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if d.WaterRatio != nil {
		t.Error("WaterRatio must be nil when ECW is zero")
	}
	if d.FatMass == nil {
		t.Error("FatMass should still be derived")
	}
}

func TestAgeOn(t *testing.T) {
	birth := day(1995, 6, 15)
	tests := []struct {
		ref      int
		month    int
		dayOf    int
		expected int
	}{
		{2025, 6, 14, 29},
		{2025, 6, 15, 30},
		{2025, 12, 1, 30},
	}
	for _, tt := range tests {
		got := AgeOn(birth, day(tt.ref, time.Month(tt.month), tt.dayOf))
		if got != tt.expected {
			t.Errorf("AgeOn(%d-%d-%d) = %d, want %d", tt.ref, tt.month, tt.dayOf, got, tt.expected)
		}
	}
}
