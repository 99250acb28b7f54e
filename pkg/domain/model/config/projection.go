package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// ProjectionConfig holds the tunable constants of the maturity-risk model
type ProjectionConfig struct {
	// ReductionRatePerLevel is the fraction of remaining risk removed by one
	// maturity level of improvement.
	ReductionRatePerLevel float64

	// BreachCurve enables the display-only breach probability curve
	// P(breach) = BaseProbability * exp(-DecayConstant * level). Nil disables it.
	BreachCurve *BreachCurve
}

// BreachCurve parameterizes the exponential breach probability curve
type BreachCurve struct {
	BaseProbability float64
	DecayConstant   float64
}

// Validate checks if the ProjectionConfig is valid
func (c *ProjectionConfig) Validate() error {
	if math.IsNaN(c.ReductionRatePerLevel) || c.ReductionRatePerLevel < 0 || c.ReductionRatePerLevel > 1 {
		return goerr.New("reduction rate per level must be between 0 and 1", goerr.V("rate", c.ReductionRatePerLevel))
	}
	if c.BreachCurve != nil {
		if err := c.BreachCurve.Validate(); err != nil {
			return goerr.Wrap(err, "invalid breach curve")
		}
	}
	return nil
}

// Validate checks if the BreachCurve is valid
func (b *BreachCurve) Validate() error {
	if math.IsNaN(b.BaseProbability) || b.BaseProbability < 0 || b.BaseProbability > 1 {
		return goerr.New("base breach probability must be between 0 and 1", goerr.V("base", b.BaseProbability))
	}
	if math.IsNaN(b.DecayConstant) || math.IsInf(b.DecayConstant, 0) || b.DecayConstant < 0 {
		return goerr.New("breach decay constant must be a non-negative finite number", goerr.V("k", b.DecayConstant))
	}
	return nil
}
