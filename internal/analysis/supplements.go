package analysis

import "fmt"

// Evidence grades
const (
	GradeA = "A"
	GradeB = "B"
)

// Supplement is one evidence-graded recommendation
type Supplement struct {
	Name     string `json:"name"`
	Dose     string `json:"dose"`
	Timing   string `json:"timing"`
	Evidence string `json:"evidence"`
	Active   bool   `json:"active"`
	Note     string `json:"note,omitempty"`
}

// RecommendSupplements returns the supplement table for a phase. Entries that
// do not apply are kept with Active false and a note, except electrolytes,
// which are listed only in Cutting and Peak Week.
func RecommendSupplements(phase Phase, bodyWeight *float64) []Supplement {
	training := phase == PhaseBulking || phase == PhaseCutting || phase == PhaseRecomposition
	contestPrep := phase == PhaseCutting || phase == PhasePeakWeek

	caffeineDose := "3–6 mg/kg"
	if bodyWeight != nil {
		caffeineDose = fmt.Sprintf("%.0f–%.0f mg", *bodyWeight*3, *bodyWeight*6)
	}

	out := []Supplement{
		{Name: "Creatine monohydrate", Dose: "3–5 g/day", Timing: "Any time, with a meal", Evidence: GradeA, Active: true},
		{Name: "Caffeine", Dose: caffeineDose, Timing: "60 min pre-workout", Evidence: GradeA, Active: training},
		{Name: "Beta-alanine", Dose: "3.2–6.4 g/day, split", Timing: "With meals", Evidence: GradeA, Active: training},
		{Name: "HMB (free acid)", Dose: "3 g/day (3 × 1 g)", Timing: "With meals", Evidence: GradeB, Active: contestPrep},
		{Name: "Vitamin D3 + K2", Dose: "2000–5000 IU/day", Timing: "With a fatty meal", Evidence: GradeB, Active: true},
		{Name: "Omega-3 (EPA+DHA)", Dose: "2–4 g/day", Timing: "With a meal", Evidence: GradeB, Active: true},
	}

	switch phase {
	case PhasePeakWeek:
		out[1].Note = "use with caution in peak week"
		out[2].Note = "not needed in peak week"
	case PhaseOffSeason:
		out[1].Note = "optional outside a structured phase"
		out[2].Note = "optional outside a structured phase"
	}
	if !contestPrep {
		out[3].Note = "reserved for aggressive cuts and peak week"
	}

	if contestPrep {
		out = append(out, Supplement{
			Name:     "Electrolytes (Na + K + Mg)",
			Dose:     "Na 2–4 g, K 3–4 g, Mg 400 mg per day",
			Timing:   "Spread across meals",
			Evidence: GradeB,
			Active:   true,
		})
	}
	return out
}
