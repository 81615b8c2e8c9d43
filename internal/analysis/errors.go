package analysis

import "errors"

// Error kinds reported by the engine. Callers match them with errors.Is;
// the wrapped message names the offending quantity.
var (
	// ErrMissingInput means a required value is absent
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidInput means a value is outside its physiological domain
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientData means a rolling window has too few samples
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInfeasibleMacros means protein and fat exceed the caloric target
	ErrInfeasibleMacros = errors.New("infeasible macros")
)
