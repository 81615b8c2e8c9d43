package analysis

import (
	"fmt"

	"physique-coach/internal/store"
)

// karvonenZones are the five training zones as fractions of heart-rate reserve
var karvonenZones = [5][2]float64{
	{0.50, 0.60},
	{0.60, 0.70},
	{0.70, 0.80},
	{0.80, 0.90},
	{0.90, 1.00},
}

// TanakaMaxHR estimates maximum heart rate: 208 − 0.7 × age
func TanakaMaxHR(age float64) (float64, error) {
	if age <= 0 {
		return 0, fmt.Errorf("%w: age %v must be positive", ErrInvalidInput, age)
	}
	return 208 - 0.7*age, nil
}

// Karvonen returns the target heart rate at an intensity fraction of reserve
func Karvonen(maxHR, restingHR, intensity float64) (float64, error) {
	if restingHR <= 0 || maxHR <= restingHR {
		return 0, fmt.Errorf("%w: resting %v / max %v heart rate", ErrInvalidInput, restingHR, maxHR)
	}
	if intensity < 0 || intensity > 1 {
		return 0, fmt.Errorf("%w: intensity %v outside 0..1", ErrInvalidInput, intensity)
	}
	return (maxHR-restingHR)*intensity + restingHR, nil
}

// ZoneTable is a resolved set of heart-rate zones
type ZoneTable struct {
	Zones  []store.HeartRateZone `json:"zones"`
	MaxHR  *float64              `json:"max_hr"` // nil for manual zones
	Origin Origin                `json:"origin"`
}

// HeartRateZones returns the athlete's manual zones when configured, otherwise
// Karvonen zones from Tanaka max HR and the resting heart rate.
func HeartRateZones(manual []store.HeartRateZone, age float64, restingHR *float64) (ZoneTable, error) {
	if len(manual) > 0 {
		return ZoneTable{Zones: manual, Origin: OriginManual}, nil
	}
	if restingHR == nil {
		return ZoneTable{}, fmt.Errorf("%w: resting heart rate", ErrMissingInput)
	}

	maxHR, err := TanakaMaxHR(age)
	if err != nil {
		return ZoneTable{}, err
	}

	zones := make([]store.HeartRateZone, 0, len(karvonenZones))
	for i, z := range karvonenZones {
		low, err := Karvonen(maxHR, *restingHR, z[0])
		if err != nil {
			return ZoneTable{}, err
		}
		high, err := Karvonen(maxHR, *restingHR, z[1])
		if err != nil {
			return ZoneTable{}, err
		}
		zones = append(zones, store.HeartRateZone{Zone: i + 1, Low: low, High: high})
	}
	return ZoneTable{Zones: zones, MaxHR: &maxHR, Origin: OriginDerived}, nil
}
