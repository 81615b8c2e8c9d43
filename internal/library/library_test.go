package library

import (
	"errors"
	"testing"

	"physique-coach/internal/analysis"
)

func TestReferences(t *testing.T) {
	all, err := References("")
	if err != nil {
		t.Fatalf("References failed: %v", err)
	}
	if len(all) != 30 {
		t.Errorf("got %d references, want 30", len(all))
	}

	seen := make(map[string]bool)
	total := 0
	for _, m := range Modules {
		refs, err := References(m)
		if err != nil {
			t.Fatalf("References(%q) failed: %v", m, err)
		}
		for _, r := range refs {
			if r.APA == "" || r.Summary == "" {
				t.Errorf("%s is missing text", r.Key)
			}
			if seen[r.Key] {
				t.Errorf("duplicate key %s", r.Key)
			}
			seen[r.Key] = true
		}
		total += len(refs)
	}
	if total != len(all) {
		t.Errorf("modules cover %d references, want %d", total, len(all))
	}
}

func TestReferences_UnknownModule(t *testing.T) {
	_, err := References("astrology")
	if !errors.Is(err, analysis.ErrInvalidInput) {
		t.Errorf("References() error = %v, want ErrInvalidInput", err)
	}
}

func TestExercises_CoverSplit(t *testing.T) {
	exercises, err := Exercises()
	if err != nil {
		t.Fatalf("Exercises failed: %v", err)
	}

	byMuscle := make(map[string]int)
	for _, ex := range exercises {
		byMuscle[ex.Muscle]++
	}
	for _, s := range analysis.TrainingSplit {
		for _, m := range s.Muscles {
			if byMuscle[m] == 0 {
				t.Errorf("no exercise for %s (%s)", m, s.Name)
			}
		}
	}
}
