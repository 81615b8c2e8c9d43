package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestMacroSplit(t *testing.T) {
	carbs, err := MacroSplit(2500, 180, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(carbs-287.5) > 1e-9 {
		t.Errorf("MacroSplit(2500, 180, 70) = %v, want 287.5", carbs)
	}

	carbs, err = MacroSplit(1350, 180, 70)
	if err != nil {
		t.Fatalf("exact fit should not fail: %v", err)
	}
	if carbs != 0 {
		t.Errorf("exact fit carbs = %v, want 0", carbs)
	}

	if _, err := MacroSplit(1200, 180, 70); !errors.Is(err, ErrInfeasibleMacros) {
		t.Errorf("error = %v, want ErrInfeasibleMacros", err)
	}
}

func TestPlanDay(t *testing.T) {
	base := NutritionInput{BodyWeight: 80, FatFreeMass: 70}
	const tdee = 2917.1

	tests := []struct {
		name     string
		phase    Phase
		assisted bool
		weeks    int
		calories float64
		protein  float64
		fat      float64
		carbs    float64
	}{
		{"bulking", PhaseBulking, false, 0, tdee + 300, 154, 80, 470.275},
		{"bulking assisted", PhaseBulking, true, 0, tdee + 500, 196, 80, 478.275},
		{"cutting", PhaseCutting, false, 3, tdee - 500, 217, 56, 261.275},
		{"cutting 8 weeks in", PhaseCutting, false, 8, tdee - 560, 217, 56, 246.275},
		{"recomposition", PhaseRecomposition, false, 0, tdee - 200, 175, 72, 342.275},
		{"off-season", PhaseOffSeason, false, 0, tdee, 154, 80, (tdee - 616 - 720) / 4},
		{"bulking ignores deficit weeks", PhaseBulking, false, 10, tdee + 300, 154, 80, 470.275},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Phase = tt.phase
			in.Assisted = tt.assisted
			in.DeficitWeeks = tt.weeks

			got, err := PlanDay(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Calories-tt.calories) > 0.01 {
				t.Errorf("Calories = %v, want %v", got.Calories, tt.calories)
			}
			if math.Abs(got.ProteinG-tt.protein) > 0.01 {
				t.Errorf("ProteinG = %v, want %v", got.ProteinG, tt.protein)
			}
			if math.Abs(got.FatG-tt.fat) > 0.01 {
				t.Errorf("FatG = %v, want %v", got.FatG, tt.fat)
			}
			if math.Abs(got.CarbsG-tt.carbs) > 0.01 {
				t.Errorf("CarbsG = %v, want %v", got.CarbsG, tt.carbs)
			}
		})
	}
}

func TestPlanDay_LossRateAdjustment(t *testing.T) {
	const tdee = 2917.1

	tests := []struct {
		name       string
		phase      Phase
		rate       *float64
		plateau    bool
		adjustment float64
		calories   float64
		refeed     float64
	}{
		{"plateau deepens deficit", PhaseCutting, floatPtr(0.3), true, -150, tdee - 800, tdee - 150},
		{"fast loss adds food", PhaseCutting, floatPtr(1.2), false, 100, tdee - 400, tdee + 100},
		{"on-target loss", PhaseCutting, floatPtr(0.7), false, 0, tdee - 500, tdee},
		{"plateau without a rate", PhaseCutting, nil, true, 0, tdee - 650, tdee},
		{"bulking ignores rate", PhaseBulking, floatPtr(1.5), true, 0, tdee + 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NutritionInput{
				Phase:         tt.phase,
				BodyWeight:    80,
				FatFreeMass:   70,
				WeeklyRatePct: tt.rate,
				Plateau:       tt.plateau,
			}

			got, err := PlanDay(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.RateAdjustment != tt.adjustment {
				t.Errorf("RateAdjustment = %v, want %v", got.RateAdjustment, tt.adjustment)
			}
			if math.Abs(got.Calories-tt.calories) > 0.01 {
				t.Errorf("Calories = %v, want %v", got.Calories, tt.calories)
			}

			if tt.phase != PhaseCutting {
				return
			}
			week, err := PlanWeek(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(week[6].Calories-tt.refeed) > 0.01 {
				t.Errorf("refeed Calories = %v, want %v", week[6].Calories, tt.refeed)
			}
		})
	}
}

func TestPlanDay_PeakWeek(t *testing.T) {
	in := NutritionInput{Phase: PhasePeakWeek, BodyWeight: 80, FatFreeMass: 70}

	tests := []struct {
		day      int
		kind     string
		calories float64
		carbs    float64
	}{
		{1, DayDepletion, 2417.1, 243.275},
		{3, DayDepletion, 2417.1, 243.275},
		{4, DayLoading, 3788, 640},
		{5, DayLoading, 3788, 640},
		{6, DayFlat, 2917.1, 386.275},
		{7, DayFlat, 2917.1, 386.275},
	}

	for _, tt := range tests {
		in.PeakWeekDay = tt.day
		got, err := PlanDay(in)
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", tt.day, err)
		}
		if got.Kind != tt.kind {
			t.Errorf("day %d Kind = %s, want %s", tt.day, got.Kind, tt.kind)
		}
		if math.Abs(got.Calories-tt.calories) > 0.01 {
			t.Errorf("day %d Calories = %v, want %v", tt.day, got.Calories, tt.calories)
		}
		if math.Abs(got.CarbsG-tt.carbs) > 0.01 {
			t.Errorf("day %d CarbsG = %v, want %v", tt.day, got.CarbsG, tt.carbs)
		}
		if math.Abs(got.ProteinG-217) > 0.01 {
			t.Errorf("day %d ProteinG = %v, want 217", tt.day, got.ProteinG)
		}
	}

	in.PeakWeekDay = 0
	if _, err := PlanDay(in); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("day 0: error = %v, want ErrInvalidInput", err)
	}
}

func TestPlanDay_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		in          NutritionInput
		expectedErr error
	}{
		{"no fat-free mass", NutritionInput{Phase: PhaseCutting, BodyWeight: 80}, ErrMissingInput},
		{"no bodyweight", NutritionInput{Phase: PhaseCutting, FatFreeMass: 70}, ErrMissingInput},
		{"ffm above weight", NutritionInput{Phase: PhaseCutting, BodyWeight: 60, FatFreeMass: 70}, ErrInvalidInput},
		{"unknown phase", NutritionInput{Phase: "maintenance", BodyWeight: 80, FatFreeMass: 70}, ErrInvalidInput},
		{"negative weeks", NutritionInput{Phase: PhaseCutting, BodyWeight: 80, FatFreeMass: 70, DeficitWeeks: -1}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PlanDay(tt.in); !errors.Is(err, tt.expectedErr) {
				t.Errorf("error = %v, want %v", err, tt.expectedErr)
			}
		})
	}
}

func TestPlanDay_Infeasible(t *testing.T) {
	// Tiny lean mass with a heavy frame: fat alone outruns the cutting target
	in := NutritionInput{Phase: PhaseCutting, BodyWeight: 200, FatFreeMass: 30}
	if _, err := PlanDay(in); !errors.Is(err, ErrInfeasibleMacros) {
		t.Errorf("error = %v, want ErrInfeasibleMacros", err)
	}
}

func TestPlanWeek_CuttingCarbCycle(t *testing.T) {
	in := NutritionInput{Phase: PhaseCutting, BodyWeight: 80, FatFreeMass: 70}

	week, err := PlanWeek(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	for i, d := range week {
		if d.Day != i+1 {
			t.Errorf("entry %d Day = %d", i, d.Day)
		}
		wantKind := DayStandard
		if d.Day > 5 {
			wantKind = DayRefeed
		}
		if d.Kind != wantKind {
			t.Errorf("day %d Kind = %s, want %s", d.Day, d.Kind, wantKind)
		}
	}
	if week[6].CarbsG <= week[0].CarbsG {
		t.Errorf("refeed carbs %v should exceed deficit-day carbs %v", week[6].CarbsG, week[0].CarbsG)
	}
	if week[0].ProteinG != week[6].ProteinG {
		t.Error("protein should not change on refeed days")
	}
}

func TestPlanWeek_PeakWeek(t *testing.T) {
	in := NutritionInput{Phase: PhasePeakWeek, BodyWeight: 80, FatFreeMass: 70}

	week, err := PlanWeek(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := []string{DayDepletion, DayDepletion, DayDepletion, DayLoading, DayLoading, DayFlat, DayFlat}
	for i, d := range week {
		if d.Kind != kinds[i] {
			t.Errorf("day %d Kind = %s, want %s", i+1, d.Kind, kinds[i])
		}
	}
}
