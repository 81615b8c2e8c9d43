package analysis

import (
	"fmt"
	"math/rand/v2"
)

// Exercise is one entry of the exercise library
type Exercise struct {
	Name   string `json:"name" yaml:"name"`
	Muscle string `json:"muscle" yaml:"muscle"`
}

// Session is one day of the three-way training split
type Session struct {
	Name    string
	Muscles []string
}

// TrainingSplit is the push / pull / legs rotation the weekly plan fills
var TrainingSplit = []Session{
	{"Chest + Shoulders + Triceps", []string{"Chest", "Upper Chest", "Lower Chest", "Front Delts", "Side Delts", "Rear Delts", "Upper Traps", "Triceps", "Triceps Long Head"}},
	{"Back + Biceps + Posterior Chain", []string{"Lats", "Mid Back", "Rhomboids", "Biceps", "Biceps Long Head", "Brachioradialis", "Hamstrings", "Glutes", "Glute Medius"}},
	{"Legs + Calves + Abs", []string{"Quadriceps", "Hamstrings", "Glutes", "Glute Medius", "Gastrocnemius", "Soleus", "Rectus Abdominis", "Obliques", "Core"}},
}

// Intensity techniques assigned to individual exercises
const (
	TechniqueDropSet   = "drop set"
	TechniqueRestPause = "rest-pause"
	TechniqueSuperset  = "superset with next"
)

// PlannedExercise is one line of the weekly plan
type PlannedExercise struct {
	Session        string    `json:"session"`
	Exercise       string    `json:"exercise"`
	Muscle         string    `json:"muscle"`
	Sets           int       `json:"sets"`
	RepsMin        int       `json:"reps_min"`
	RepsMax        int       `json:"reps_max"`
	RIR            *RIRRange `json:"rir"`
	RestSeconds    int       `json:"rest_seconds"`
	Technique      string    `json:"technique,omitempty"`
	ProgressionPct float64   `json:"progression_pct"`
}

// WeeklyTrainingPlan picks exercises for each session of TrainingSplit from
// library and applies the phase prescription. rng shuffles the candidates so
// exercise selection rotates between plans.
//
// Bulking gets six exercises of four sets per session with a drop set or
// rest-pause on the last one; cutting gets five with alternating supersets;
// peak week gets four; every other phase five. All non-bulking phases use
// three sets.
func WeeklyTrainingPlan(tp TrainingPrescription, library []Exercise, rng *rand.Rand) ([]PlannedExercise, error) {
	if len(library) == 0 {
		return nil, fmt.Errorf("%w: exercise library", ErrMissingInput)
	}

	sets, perSession := 3, 5
	switch tp.Phase {
	case PhaseBulking:
		sets, perSession = 4, 6
	case PhasePeakWeek:
		perSession = 4
	}

	var plan []PlannedExercise
	for _, s := range TrainingSplit {
		candidates := exercisesFor(library, s.Muscles)
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		if len(candidates) > perSession {
			candidates = candidates[:perSession]
		}

		for i, ex := range candidates {
			plan = append(plan, PlannedExercise{
				Session:        s.Name,
				Exercise:       ex.Name,
				Muscle:         ex.Muscle,
				Sets:           sets,
				RepsMin:        tp.RepsMin,
				RepsMax:        tp.RepsMax,
				RIR:            copyRIR(tp.RIR),
				RestSeconds:    tp.RestSeconds,
				Technique:      techniqueFor(tp.Phase, i, len(candidates)),
				ProgressionPct: tp.ProgressionPct,
			})
		}
	}
	return plan, nil
}

func copyRIR(r *RIRRange) *RIRRange {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func exercisesFor(library []Exercise, muscles []string) []Exercise {
	want := make(map[string]bool, len(muscles))
	for _, m := range muscles {
		want[m] = true
	}
	var out []Exercise
	for _, ex := range library {
		if want[ex.Muscle] {
			out = append(out, ex)
		}
	}
	return out
}

// techniqueFor assigns the intensity technique for the i-th of n exercises
func techniqueFor(phase Phase, i, n int) string {
	last := i == n-1
	switch {
	case phase == PhaseBulking && last && i%2 == 0:
		return TechniqueDropSet
	case phase == PhaseBulking && last:
		return TechniqueRestPause
	case phase == PhaseCutting && i%2 == 0 && !last:
		return TechniqueSuperset
	}
	return ""
}
