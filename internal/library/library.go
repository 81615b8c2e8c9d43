// Package library holds the static catalogs shipped with the binary: the
// exercise library used for weekly training plans and the scientific
// references behind each coaching module.
package library

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"physique-coach/internal/analysis"
)

// Reference modules
const (
	ModulePeriodization = "periodization"
	ModuleNutrition     = "nutrition"
	ModuleTraining      = "training"
	ModuleRecovery      = "recovery"
	ModuleSupplements   = "supplements"
)

// Modules lists the reference modules in display order
var Modules = []string{ModulePeriodization, ModuleNutrition, ModuleTraining, ModuleRecovery, ModuleSupplements}

// Reference is one citation in APA format
type Reference struct {
	Key     string `json:"key" yaml:"key"`
	Module  string `json:"module" yaml:"module"`
	APA     string `json:"apa" yaml:"apa"`
	Summary string `json:"summary" yaml:"summary"`
}

var (
	//go:embed references.yaml
	referencesYAML []byte
	//go:embed exercises.yaml
	exercisesYAML []byte
)

var (
	loadOnce   sync.Once
	references []Reference
	exercises  []analysis.Exercise
	loadErr    error
)

func load() {
	if loadErr = decode(referencesYAML, &references); loadErr != nil {
		loadErr = fmt.Errorf("references: %w", loadErr)
		return
	}
	if loadErr = decode(exercisesYAML, &exercises); loadErr != nil {
		loadErr = fmt.Errorf("exercises: %w", loadErr)
	}
}

func decode(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// References returns every reference, or only those of module when it is non-empty
func References(module string) ([]Reference, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	if module == "" {
		return references, nil
	}

	var out []Reference
	for _, r := range references {
		if r.Module == module {
			out = append(out, r)
		}
	}
	if out == nil {
		return nil, fmt.Errorf("%w: unknown reference module %q", analysis.ErrInvalidInput, module)
	}
	return out, nil
}

// Exercises returns the exercise library
func Exercises() ([]analysis.Exercise, error) {
	loadOnce.Do(load)
	return exercises, loadErr
}
