package types

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// MaturityLevel is the governance maturity on the ordinal 1-5 scale.
// Fractional values are allowed for interpolated display.
type MaturityLevel float64

const (
	MinMaturityLevel MaturityLevel = 1
	MaxMaturityLevel MaturityLevel = 5
)

// Validate checks if the MaturityLevel is within [1,5]
func (m MaturityLevel) Validate() error {
	v := float64(m)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return goerr.New("maturity level must be a finite number", goerr.V("level", v))
	}
	if m < MinMaturityLevel || m > MaxMaturityLevel {
		return goerr.New("maturity level must be between 1 and 5", goerr.V("level", v))
	}
	return nil
}

// Float64 returns the level as a plain float64
func (m MaturityLevel) Float64() float64 {
	return float64(m)
}
