package analysis

import (
	"errors"
	"fmt"
	"math"

	"physique-coach/internal/store"
)

// SiriBodyFat converts body density (g/cm³) to body-fat percent: 495/Dc − 450
func SiriBodyFat(density float64) (float64, error) {
	if density <= 0 {
		return 0, fmt.Errorf("%w: body density %v must be positive", ErrInvalidInput, density)
	}
	return 495/density - 450, nil
}

// SiriDensity is the inverse of SiriBodyFat
func SiriDensity(bodyFat float64) (float64, error) {
	if bodyFat < 0 || bodyFat >= 100 {
		return 0, fmt.Errorf("%w: body fat %v%% out of range", ErrInvalidInput, bodyFat)
	}
	return 495 / (bodyFat + 450), nil
}

// FatMass returns kilograms of fat for a weight and body-fat percent
func FatMass(weight, bodyFat float64) (float64, error) {
	if weight <= 0 {
		return 0, fmt.Errorf("%w: weight %v must be positive", ErrInvalidInput, weight)
	}
	if bodyFat < 0 || bodyFat >= 100 {
		return 0, fmt.Errorf("%w: body fat %v%% out of range", ErrInvalidInput, bodyFat)
	}
	return weight * bodyFat / 100, nil
}

// FatFreeMass returns weight minus fat mass
func FatFreeMass(weight, bodyFat float64) (float64, error) {
	fm, err := FatMass(weight, bodyFat)
	if err != nil {
		return 0, err
	}
	return weight - fm, nil
}

// PhaseAngle returns arctan(reactance/resistance) in degrees
func PhaseAngle(reactance, resistance float64) (float64, error) {
	if resistance <= 0 {
		return 0, fmt.Errorf("%w: resistance %v must be positive", ErrInvalidInput, resistance)
	}
	if reactance < 0 {
		return 0, fmt.Errorf("%w: reactance %v must not be negative", ErrInvalidInput, reactance)
	}
	return math.Atan(reactance/resistance) * 180 / math.Pi, nil
}

// WaterRatio returns intracellular over extracellular water
func WaterRatio(intracellular, extracellular float64) (float64, error) {
	if extracellular <= 0 {
		return 0, fmt.Errorf("%w: extracellular water %v must be positive", ErrInvalidInput, extracellular)
	}
	if intracellular < 0 {
		return 0, fmt.Errorf("%w: intracellular water %v must not be negative", ErrInvalidInput, intracellular)
	}
	return intracellular / extracellular, nil
}

// Body-fat sources
const (
	SourceManual   = "manual"
	SourceScale    = "scale"
	SourceCaliper  = "caliper"
	SourceSkinfold = "skinfold"
)

// BodyFatEstimate is the resolved final body-fat and where it came from
type BodyFatEstimate struct {
	Value   float64
	Sources []string
}

// ResolveBodyFat picks the final body-fat for a measurement. An athlete
// override wins; otherwise the present estimates (scale, caliper and the
// skinfold regression) are averaged.
func ResolveBodyFat(m store.Measurement, sex store.Sex, age float64) (BodyFatEstimate, error) {
	if m.BodyFatManual && m.BodyFatFinal != nil {
		return BodyFatEstimate{Value: *m.BodyFatFinal, Sources: []string{SourceManual}}, nil
	}

	var values []float64
	var sources []string
	if m.BodyFatScale != nil {
		values = append(values, *m.BodyFatScale)
		sources = append(sources, SourceScale)
	}
	if m.BodyFatCaliper != nil {
		values = append(values, *m.BodyFatCaliper)
		sources = append(sources, SourceCaliper)
	}

	sf, err := SkinfoldEstimate(m.Skinfolds, age, sex)
	switch {
	case err == nil:
		values = append(values, sf.BodyFat)
		sources = append(sources, SourceSkinfold)
	case !errors.Is(err, ErrMissingInput):
		return BodyFatEstimate{}, err
	}

	if len(values) == 0 {
		return BodyFatEstimate{}, fmt.Errorf("%w: no body-fat estimate available", ErrMissingInput)
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return BodyFatEstimate{Value: sum / float64(len(values)), Sources: sources}, nil
}

// Derived holds the computed fields of a measurement; nil where undefined
type Derived struct {
	BodyFatFinal *float64
	FatMass      *float64
	FatFreeMass  *float64
	PhaseAngle   *float64
	WaterRatio   *float64
}

// DeriveMeasurement computes every derived field it can. Missing inputs
// leave the field nil; out-of-domain inputs are returned joined in err.
func DeriveMeasurement(m store.Measurement, sex store.Sex, age float64) (Derived, error) {
	var d Derived
	var errs []error

	bf, err := ResolveBodyFat(m, sex, age)
	if err == nil {
		d.BodyFatFinal = &bf.Value
	} else if !errors.Is(err, ErrMissingInput) {
		errs = append(errs, fmt.Errorf("body fat: %w", err))
	}

	if d.BodyFatFinal != nil && m.Weight != nil {
		fm, err := FatMass(*m.Weight, *d.BodyFatFinal)
		if err != nil {
			errs = append(errs, fmt.Errorf("fat mass: %w", err))
		} else {
			ffm := *m.Weight - fm
			d.FatMass = &fm
			d.FatFreeMass = &ffm
		}
	}

	if m.Reactance != nil && m.Resistance != nil {
		pa, err := PhaseAngle(*m.Reactance, *m.Resistance)
		if err != nil {
			errs = append(errs, fmt.Errorf("phase angle: %w", err))
		} else {
			d.PhaseAngle = &pa
		}
	}

	if m.IntracellularWater != nil && m.ExtracellularWater != nil {
		wr, err := WaterRatio(*m.IntracellularWater, *m.ExtracellularWater)
		if err != nil {
			errs = append(errs, fmt.Errorf("water ratio: %w", err))
		} else {
			d.WaterRatio = &wr
		}
	}

	return d, errors.Join(errs...)
}

// Apply copies the derived fields onto m
func (d Derived) Apply(m *store.Measurement) {
	m.BodyFatFinal = d.BodyFatFinal
	m.FatMass = d.FatMass
	m.FatFreeMass = d.FatFreeMass
	m.PhaseAngle = d.PhaseAngle
	m.WaterRatio = d.WaterRatio
}
