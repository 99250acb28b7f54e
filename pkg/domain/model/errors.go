package model

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// ErrValidation is wrapped by every error caused by an input outside its
// documented domain. Callers check it with errors.Is.
var ErrValidation = goerr.New("validation error")

// Context keys for error values
const (
	FieldKey = "field"
	ValueKey = "value"
)

func validateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return goerr.Wrap(ErrValidation, "value must be a finite number", goerr.V(FieldKey, field), goerr.V(ValueKey, v))
	}
	return nil
}

// ValidateNonNegative rejects NaN, infinities and negative values
func ValidateNonNegative(field string, v float64) error {
	if err := validateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return goerr.Wrap(ErrValidation, "value must not be negative", goerr.V(FieldKey, field), goerr.V(ValueKey, v))
	}
	return nil
}

// ValidateUnitInterval rejects values outside [0,1]
func ValidateUnitInterval(field string, v float64) error {
	if err := validateFinite(field, v); err != nil {
		return err
	}
	if v < 0 || v > 1 {
		return goerr.Wrap(ErrValidation, "value must be between 0 and 1", goerr.V(FieldKey, field), goerr.V(ValueKey, v))
	}
	return nil
}
