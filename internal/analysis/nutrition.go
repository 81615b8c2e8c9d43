package analysis

import (
	"fmt"
)

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0

	// Peak week
	PeakDepletionDeficit  = -500.0
	PeakLoadingCarbsPerKg = 8.0 // g/kg bodyweight
	peakDepletionFatPerKg = 0.8
	peakLoadingFatPerKg   = 0.5
)

// Daily caloric delta from maintenance by phase
var caloricDelta = map[Phase]float64{
	PhaseOffSeason:     0,
	PhaseBulking:       300,
	PhaseRecomposition: -200,
	PhaseCutting:       -500,
}

const (
	assistedBulkingDelta = 500.0
	plateauCuttingDelta  = -650.0

	// Loss-rate corrections applied to maintenance while cutting
	FastLossRatePct    = 1.0
	fastLossAdjustment = 100.0
	plateauAdjustment  = -150.0
)

// Protein in g/kg fat-free mass by phase
var proteinPerKgFFM = map[Phase]float64{
	PhaseOffSeason:     2.2,
	PhaseBulking:       2.2,
	PhaseRecomposition: 2.5,
	PhaseCutting:       3.1,
	PhasePeakWeek:      3.1,
}

const assistedBulkingProtein = 2.8

// Fat in g/kg bodyweight by phase
var fatPerKgBodyweight = map[Phase]float64{
	PhaseOffSeason:     1.0,
	PhaseBulking:       1.0,
	PhaseRecomposition: 0.9,
	PhaseCutting:       0.7,
	PhasePeakWeek:      0.7,
}

// Day kinds within a plan
const (
	DayStandard  = "standard"
	DayRefeed    = "refeed"
	DayDepletion = "depletion"
	DayLoading   = "loading"
	DayFlat      = "maintenance"
)

// NutritionInput is everything the planner needs for one day
type NutritionInput struct {
	Phase        Phase
	Assisted     bool
	BodyWeight   float64 // kg
	FatFreeMass  float64 // kg
	DeficitWeeks int     // continuous weeks in a deficit phase
	PeakWeekDay  int     // 1..7, only read in PeakWeek

	// Cutting only: latest weekly loss (% bodyweight) and plateau flag
	WeeklyRatePct *float64
	Plateau       bool
}

// MacroPlan is the caloric and macro target for one day
type MacroPlan struct {
	Day            int     `json:"day,omitempty"`
	Kind           string  `json:"kind"`
	Maintenance    float64 `json:"maintenance_kcal"`
	Thermogenesis  float64 `json:"thermogenesis_kcal"`
	RateAdjustment float64 `json:"rate_adjustment_kcal,omitempty"`
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	FatG           float64 `json:"fat_g"`
	CarbsG         float64 `json:"carbs_g"`
}

// MacroSplit returns the carbohydrate grams left after protein and fat.
// A negative residual is reported rather than clamped.
func MacroSplit(calories, proteinG, fatG float64) (float64, error) {
	carbs := (calories - proteinG*kcalPerGramProtein - fatG*kcalPerGramFat) / kcalPerGramCarb
	if carbs < 0 {
		return 0, fmt.Errorf("%w: protein %.0fg and fat %.0fg exceed %.0f kcal", ErrInfeasibleMacros, proteinG, fatG, calories)
	}
	return carbs, nil
}

func (in NutritionInput) validate() error {
	switch {
	case in.BodyWeight == 0:
		return fmt.Errorf("%w: bodyweight", ErrMissingInput)
	case in.FatFreeMass == 0:
		return fmt.Errorf("%w: fat-free mass", ErrMissingInput)
	case in.BodyWeight < 0 || in.FatFreeMass < 0 || in.FatFreeMass > in.BodyWeight:
		return fmt.Errorf("%w: bodyweight %v / fat-free mass %v", ErrInvalidInput, in.BodyWeight, in.FatFreeMass)
	}
	if _, ok := proteinPerKgFFM[in.Phase]; !ok {
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, in.Phase)
	}
	return nil
}

// proteinDose returns daily protein grams
func (in NutritionInput) proteinDose() float64 {
	perKg := proteinPerKgFFM[in.Phase]
	if in.Phase == PhaseBulking && in.Assisted {
		perKg = assistedBulkingProtein
	}
	return perKg * in.FatFreeMass
}

// adjustedMaintenance returns TDEE and the thermogenesis correction for the phase
func (in NutritionInput) adjustedMaintenance() (tdee, thermo float64, err error) {
	tdee, err = TotalExpenditure(in.FatFreeMass)
	if err != nil {
		return 0, 0, err
	}
	if in.Phase.IsDeficit() {
		if thermo, err = AdaptiveThermogenesis(in.DeficitWeeks); err != nil {
			return 0, 0, err
		}
	}
	return tdee, thermo, nil
}

// rateAdjustment corrects cutting maintenance for the observed loss rate:
// more food when losing over 1%/week, less on a plateau.
func (in NutritionInput) rateAdjustment() float64 {
	if in.Phase != PhaseCutting || in.WeeklyRatePct == nil {
		return 0
	}
	switch rate := *in.WeeklyRatePct; {
	case rate > FastLossRatePct:
		return fastLossAdjustment
	case in.Plateau && rate < PlateauThreshold:
		return plateauAdjustment
	}
	return 0
}

// PlanDay computes the caloric target and macro split for one day
func PlanDay(in NutritionInput) (MacroPlan, error) {
	if err := in.validate(); err != nil {
		return MacroPlan{}, err
	}
	if in.Phase == PhasePeakWeek {
		return planPeakDay(in)
	}

	tdee, thermo, err := in.adjustedMaintenance()
	if err != nil {
		return MacroPlan{}, err
	}

	delta := caloricDelta[in.Phase]
	switch {
	case in.Phase == PhaseBulking && in.Assisted:
		delta = assistedBulkingDelta
	case in.Phase == PhaseCutting && in.Plateau:
		delta = plateauCuttingDelta
	}
	adj := in.rateAdjustment()

	plan := MacroPlan{
		Kind:           DayStandard,
		Maintenance:    tdee,
		Thermogenesis:  thermo,
		RateAdjustment: adj,
		Calories:       tdee + delta - thermo + adj,
		ProteinG:       in.proteinDose(),
		FatG:           fatPerKgBodyweight[in.Phase] * in.BodyWeight,
	}
	if plan.CarbsG, err = MacroSplit(plan.Calories, plan.ProteinG, plan.FatG); err != nil {
		return MacroPlan{}, err
	}
	return plan, nil
}

// planPeakDay applies the peak-week sub-protocol: depletion on days 1–3,
// carbohydrate loading on days 4–5, maintenance on days 6–7.
func planPeakDay(in NutritionInput) (MacroPlan, error) {
	if in.PeakWeekDay < 1 || in.PeakWeekDay > PeakWeekDays {
		return MacroPlan{}, fmt.Errorf("%w: peak week day %d outside 1..%d", ErrInvalidInput, in.PeakWeekDay, PeakWeekDays)
	}

	tdee, err := TotalExpenditure(in.FatFreeMass)
	if err != nil {
		return MacroPlan{}, err
	}

	plan := MacroPlan{
		Day:         in.PeakWeekDay,
		Maintenance: tdee,
		ProteinG:    in.proteinDose(),
	}

	switch {
	case in.PeakWeekDay <= 3:
		plan.Kind = DayDepletion
		plan.Calories = tdee + PeakDepletionDeficit
		plan.FatG = peakDepletionFatPerKg * in.BodyWeight
	case in.PeakWeekDay <= 5:
		plan.Kind = DayLoading
		plan.FatG = peakLoadingFatPerKg * in.BodyWeight
		plan.CarbsG = PeakLoadingCarbsPerKg * in.BodyWeight
		plan.Calories = plan.ProteinG*kcalPerGramProtein + plan.FatG*kcalPerGramFat + plan.CarbsG*kcalPerGramCarb
		return plan, nil
	default:
		plan.Kind = DayFlat
		plan.Calories = tdee
		plan.FatG = fatPerKgBodyweight[PhasePeakWeek] * in.BodyWeight
	}

	if plan.CarbsG, err = MacroSplit(plan.Calories, plan.ProteinG, plan.FatG); err != nil {
		return MacroPlan{}, err
	}
	return plan, nil
}

// PlanWeek returns seven daily plans. Cutting cycles carbohydrates 5:2 with
// days 6–7 as refeeds at adjusted maintenance; Peak Week walks days 1–7.
func PlanWeek(in NutritionInput) ([]MacroPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	week := make([]MacroPlan, 0, 7)
	for day := 1; day <= 7; day++ {
		var plan MacroPlan
		var err error

		switch {
		case in.Phase == PhasePeakWeek:
			d := in
			d.PeakWeekDay = day
			plan, err = planPeakDay(d)
		case in.Phase == PhaseCutting && day > 5:
			plan, err = planRefeed(in)
		default:
			plan, err = PlanDay(in)
		}
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", day, err)
		}
		plan.Day = day
		week = append(week, plan)
	}
	return week, nil
}

func planRefeed(in NutritionInput) (MacroPlan, error) {
	tdee, thermo, err := in.adjustedMaintenance()
	if err != nil {
		return MacroPlan{}, err
	}
	adj := in.rateAdjustment()
	plan := MacroPlan{
		Kind:           DayRefeed,
		Maintenance:    tdee,
		Thermogenesis:  thermo,
		RateAdjustment: adj,
		Calories:       tdee - thermo + adj,
		ProteinG:       in.proteinDose(),
		FatG:           fatPerKgBodyweight[in.Phase] * in.BodyWeight,
	}
	if plan.CarbsG, err = MacroSplit(plan.Calories, plan.ProteinG, plan.FatG); err != nil {
		return MacroPlan{}, err
	}
	return plan, nil
}
