package analysis

import (
	"errors"
	"fmt"

	"physique-coach/internal/store"
)

// GoldenRatio is the target shoulder-to-waist ratio
const GoldenRatio = 1.618

// Origin tells whether a value came from the athlete or was derived
type Origin string

const (
	OriginManual  Origin = "manual"
	OriginDerived Origin = "derived"
)

// Goal is one resolved target
type Goal struct {
	Value  float64 `json:"value"`
	Origin Origin  `json:"origin"`
}

// Goals are the resolved aesthetic targets. A nil goal could not be resolved.
type Goals struct {
	BodyFat   *Goal `json:"body_fat"`
	Waist     *Goal `json:"waist"`
	Shoulders *Goal `json:"shoulders"`
	Weight    *Goal `json:"weight"`
	Thigh     *Goal `json:"thigh"`
}

// Waist as a fraction of height
var categoryWaistRatio = map[store.Category]float64{
	store.CategoryMensPhysique:    0.44,
	store.CategoryClassicPhysique: 0.45,
	store.CategoryOpen:            0.47,
	store.CategoryBikini:          0.38,
	store.CategoryWellness:        0.40,
}

// Thigh circumference as a fraction of height
var categoryThighFactor = map[store.Category]float64{
	store.CategoryMensPhysique:    0.52,
	store.CategoryBikini:          0.53,
	store.CategoryClassicPhysique: 0.54,
	store.CategoryWellness:        0.55,
	store.CategoryOpen:            0.55,
}

// Stage body-fat % by category
var categoryTargetBodyFat = map[store.Category]float64{
	store.CategoryMensPhysique:    6,
	store.CategoryClassicPhysique: 5,
	store.CategoryOpen:            4,
	store.CategoryBikini:          11,
	store.CategoryWellness:        13,
}

// ResolveGoals resolves each target: a profile override first, otherwise the
// golden-ratio and anthropometric formulas. Goals that cannot be derived are
// left nil and their errors returned joined.
func ResolveGoals(p store.AthleteProfile, fatFreeMass *float64) (Goals, error) {
	var g Goals
	var errs []error

	bf, err := resolveTargetBodyFat(p)
	if err != nil {
		errs = append(errs, fmt.Errorf("target body fat: %w", err))
	} else {
		g.BodyFat = &bf
	}

	waist, err := resolveWaist(p)
	if err != nil {
		errs = append(errs, fmt.Errorf("waist: %w", err))
	} else {
		g.Waist = &waist
	}

	switch {
	case p.TargetShoulders != nil:
		g.Shoulders = &Goal{Value: *p.TargetShoulders, Origin: OriginManual}
	case g.Waist != nil:
		g.Shoulders = &Goal{Value: g.Waist.Value * GoldenRatio, Origin: OriginDerived}
	default:
		errs = append(errs, fmt.Errorf("shoulders: %w: no waist to scale from", ErrMissingInput))
	}

	switch {
	case p.TargetWeight != nil:
		g.Weight = &Goal{Value: *p.TargetWeight, Origin: OriginManual}
	case g.BodyFat == nil:
		errs = append(errs, fmt.Errorf("weight: %w: no target body fat", ErrMissingInput))
	case fatFreeMass == nil || *fatFreeMass <= 0:
		errs = append(errs, fmt.Errorf("weight: %w: fat-free mass", ErrMissingInput))
	default:
		g.Weight = &Goal{Value: *fatFreeMass / (1 - g.BodyFat.Value/100), Origin: OriginDerived}
	}

	thigh, err := resolveThigh(p)
	if err != nil {
		errs = append(errs, fmt.Errorf("thigh: %w", err))
	} else {
		g.Thigh = &thigh
	}

	return g, errors.Join(errs...)
}

func resolveTargetBodyFat(p store.AthleteProfile) (Goal, error) {
	if p.TargetBodyFat != nil {
		if *p.TargetBodyFat <= 0 || *p.TargetBodyFat >= 100 {
			return Goal{}, fmt.Errorf("%w: %v%% outside (0, 100)", ErrInvalidInput, *p.TargetBodyFat)
		}
		return Goal{Value: *p.TargetBodyFat, Origin: OriginManual}, nil
	}
	bf, ok := categoryTargetBodyFat[p.Category]
	if !ok {
		return Goal{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	return Goal{Value: bf, Origin: OriginDerived}, nil
}

func resolveWaist(p store.AthleteProfile) (Goal, error) {
	if p.TargetWaist != nil {
		return Goal{Value: *p.TargetWaist, Origin: OriginManual}, nil
	}
	if p.TargetShoulders != nil {
		return Goal{Value: *p.TargetShoulders / GoldenRatio, Origin: OriginDerived}, nil
	}
	if p.HeightCm <= 0 {
		return Goal{}, fmt.Errorf("%w: height", ErrMissingInput)
	}
	ratio, ok := categoryWaistRatio[p.Category]
	if !ok {
		return Goal{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	return Goal{Value: p.HeightCm * ratio, Origin: OriginDerived}, nil
}

func resolveThigh(p store.AthleteProfile) (Goal, error) {
	if p.TargetThigh != nil {
		return Goal{Value: *p.TargetThigh, Origin: OriginManual}, nil
	}
	if p.HeightCm <= 0 {
		return Goal{}, fmt.Errorf("%w: height", ErrMissingInput)
	}
	factor, ok := categoryThighFactor[p.Category]
	if !ok {
		return Goal{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	return Goal{Value: p.HeightCm * factor, Origin: OriginDerived}, nil
}
