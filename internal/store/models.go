package store

import "time"

// Sex is the athlete's biological sex, used to select formula variants
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Category is the competitive division the athlete prepares for
type Category string

const (
	CategoryMensPhysique    Category = "mens_physique"
	CategoryClassicPhysique Category = "classic_physique"
	CategoryOpen            Category = "bodybuilding_open"
	CategoryBikini          Category = "bikini"
	CategoryWellness        Category = "wellness"
)

// HeartRateZone is a manually configured training zone in bpm
type HeartRateZone struct {
	Zone int     `json:"zone" yaml:"zone"`
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// AthleteProfile holds identity, physiology and per-target overrides.
// Nil overrides mean "derive automatically".
type AthleteProfile struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	BirthDate        time.Time  `json:"-" yaml:"-"`
	Sex              Sex        `json:"sex" yaml:"sex"`
	HeightCm         float64    `json:"height_cm" yaml:"height_cm"`
	TrainingAgeYears float64    `json:"training_age_years" yaml:"training_age_years"`
	Category         Category   `json:"category" yaml:"category"`
	Assisted         bool       `json:"assisted" yaml:"assisted"`
	CompetitionDate  *time.Time `json:"-" yaml:"-"`
	BaselineHRV      *float64   `json:"baseline_hrv,omitempty" yaml:"baseline_hrv"`

	TargetBodyFat   *float64 `json:"target_body_fat,omitempty" yaml:"target_body_fat"`
	TargetWeight    *float64 `json:"target_weight,omitempty" yaml:"target_weight"`
	TargetWaist     *float64 `json:"target_waist,omitempty" yaml:"target_waist"`
	TargetShoulders *float64 `json:"target_shoulders,omitempty" yaml:"target_shoulders"`
	TargetThigh     *float64 `json:"target_thigh,omitempty" yaml:"target_thigh"`

	HeartRateZones []HeartRateZone `json:"hr_zones,omitempty" yaml:"hr_zones"`
}

// Skinfolds are caliper readings in millimetres
type Skinfolds struct {
	Chest       *float64 `json:"chest,omitempty" yaml:"chest"`
	Midaxillary *float64 `json:"midaxillary,omitempty" yaml:"midaxillary"`
	Triceps     *float64 `json:"triceps,omitempty" yaml:"triceps"`
	Subscapular *float64 `json:"subscapular,omitempty" yaml:"subscapular"`
	Abdomen     *float64 `json:"abdomen,omitempty" yaml:"abdomen"`
	Suprailiac  *float64 `json:"suprailiac,omitempty" yaml:"suprailiac"`
	Thigh       *float64 `json:"thigh,omitempty" yaml:"thigh"`
	Biceps      *float64 `json:"biceps,omitempty" yaml:"biceps"`
}

// Circumferences are tape measurements in centimetres
type Circumferences struct {
	Neck      *float64 `json:"neck,omitempty" yaml:"neck"`
	Shoulders *float64 `json:"shoulders,omitempty" yaml:"shoulders"`
	Chest     *float64 `json:"chest,omitempty" yaml:"chest"`
	Waist     *float64 `json:"waist,omitempty" yaml:"waist"`
	Hips      *float64 `json:"hips,omitempty" yaml:"hips"`
	Arm       *float64 `json:"arm,omitempty" yaml:"arm"`
	Thigh     *float64 `json:"thigh,omitempty" yaml:"thigh"`
}

// Measurement is one athlete's record for a single calendar date.
// Every numeric field is nullable; nil means not measured.
type Measurement struct {
	AthleteID string    `json:"-" yaml:"-"`
	Date      time.Time `json:"-" yaml:"-"`

	// Body composition
	Weight         *float64 `json:"weight,omitempty" yaml:"weight"`                 // kg
	BodyFatScale   *float64 `json:"body_fat_scale,omitempty" yaml:"body_fat_scale"` // %
	BodyFatCaliper *float64 `json:"body_fat_caliper,omitempty" yaml:"body_fat_caliper"`
	BodyFatFinal   *float64 `json:"body_fat_final,omitempty" yaml:"body_fat_final"`
	BodyFatManual  bool     `json:"body_fat_manual,omitempty" yaml:"body_fat_manual"` // final value set by athlete
	FatMass        *float64 `json:"fat_mass,omitempty" yaml:"-"`
	FatFreeMass    *float64 `json:"fat_free_mass,omitempty" yaml:"-"`

	// Bioimpedance
	TotalWater         *float64 `json:"total_water,omitempty" yaml:"total_water"` // litres
	IntracellularWater *float64 `json:"intracellular_water,omitempty" yaml:"intracellular_water"`
	ExtracellularWater *float64 `json:"extracellular_water,omitempty" yaml:"extracellular_water"`
	Resistance         *float64 `json:"resistance,omitempty" yaml:"resistance"` // ohm
	Reactance          *float64 `json:"reactance,omitempty" yaml:"reactance"`   // ohm
	PhaseAngle         *float64 `json:"phase_angle,omitempty" yaml:"-"`         // degrees
	WaterRatio         *float64 `json:"water_ratio,omitempty" yaml:"-"`         // ICW/ECW

	Skinfolds      Skinfolds      `json:"skinfolds" yaml:"skinfolds"`
	Circumferences Circumferences `json:"circumferences" yaml:"circumferences"`

	// Recovery
	TrainingLoad  *float64 `json:"training_load,omitempty" yaml:"training_load"`
	HRV           *float64 `json:"hrv,omitempty" yaml:"hrv"` // ms, nocturnal
	SleepScore    *float64 `json:"sleep_score,omitempty" yaml:"sleep_score"`
	RecoveryHours *float64 `json:"recovery_hours,omitempty" yaml:"recovery_hours"`
	RestingHR     *float64 `json:"resting_hr,omitempty" yaml:"resting_hr"`
}

// RateEvaluation is one weekly weight-change computation kept for plateau detection
type RateEvaluation struct {
	AthleteID string    `json:"-"`
	Date      time.Time `json:"date"`
	RatePct   float64   `json:"rate_pct"` // % bodyweight lost per week
}
