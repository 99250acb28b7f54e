package quant

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/model/config"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// DefaultReductionRatePerLevel removes half of the remaining risk per maturity level
const DefaultReductionRatePerLevel = 0.5

// ReductionFactor returns 1 − (1 − rate)^(target − current), or 0 when
// target does not exceed current. Inputs are assumed validated.
func ReductionFactor(current, target types.MaturityLevel, rate float64) float64 {
	if target <= current {
		return 0
	}
	return 1 - math.Pow(1-rate, float64(target-current))
}

// Project computes the risk exposure after moving from current to target
// maturity. Regression (target ≤ current) is not modeled: the reduction is
// zero and the risk is unchanged.
func Project(currentRisk float64, current, target types.MaturityLevel, reductionRatePerLevel float64) (*model.ProjectionResult, error) {
	if err := model.ValidateNonNegative("current_risk_exposure", currentRisk); err != nil {
		return nil, err
	}
	if err := validateLevel("current_maturity_level", current); err != nil {
		return nil, err
	}
	if err := validateLevel("target_maturity_level", target); err != nil {
		return nil, err
	}
	if err := model.ValidateUnitInterval("reduction_rate_per_level", reductionRatePerLevel); err != nil {
		return nil, err
	}

	result := &model.ProjectionResult{
		ProjectedRisk: currentRisk,
	}
	if currentRisk == 0 || target <= current {
		return result, nil
	}

	factor := ReductionFactor(current, target, reductionRatePerLevel)
	projected := currentRisk * (1 - factor)

	result.ProjectedRisk = projected
	result.ProjectedRiskReduction = currentRisk - projected
	result.ReductionFactor = factor
	return result, nil
}

// BreachProbability returns base × e^(−k × level). It is a display metric
// and independent of Project.
func BreachProbability(level types.MaturityLevel, curve config.BreachCurve) (float64, error) {
	if err := validateLevel("maturity_level", level); err != nil {
		return 0, err
	}
	if err := curve.Validate(); err != nil {
		return 0, goerr.Wrap(model.ErrValidation, "invalid breach curve", goerr.V("cause", err.Error()))
	}
	return curve.BaseProbability * math.Exp(-curve.DecayConstant*float64(level)), nil
}

func validateLevel(field string, level types.MaturityLevel) error {
	if err := level.Validate(); err != nil {
		return goerr.Wrap(model.ErrValidation, "invalid maturity level",
			goerr.V(model.FieldKey, field), goerr.V(model.ValueKey, float64(level)))
	}
	return nil
}

// Model binds the tunable projection constants. The zero value is not
// usable; build it with NewModel or DefaultModel.
type Model struct {
	reductionRatePerLevel float64
	breachCurve           *config.BreachCurve
}

// NewModel builds a Model from a validated configuration
func NewModel(cfg config.ProjectionConfig) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "invalid projection config", goerr.V("cause", err.Error()))
	}
	m := &Model{reductionRatePerLevel: cfg.ReductionRatePerLevel}
	if cfg.BreachCurve != nil {
		curve := *cfg.BreachCurve
		m.breachCurve = &curve
	}
	return m, nil
}

// DefaultModel uses DefaultReductionRatePerLevel and no breach curve
func DefaultModel() *Model {
	return &Model{reductionRatePerLevel: DefaultReductionRatePerLevel}
}

// ReductionRatePerLevel returns the configured decay constant
func (m *Model) ReductionRatePerLevel() float64 {
	return m.reductionRatePerLevel
}

// Project runs the projection and, when a breach curve is configured,
// attaches breach probabilities for both levels.
func (m *Model) Project(currentRisk float64, current, target types.MaturityLevel) (*model.ProjectionResult, error) {
	result, err := Project(currentRisk, current, target, m.reductionRatePerLevel)
	if err != nil {
		return nil, err
	}

	if m.breachCurve != nil {
		cur, err := BreachProbability(current, *m.breachCurve)
		if err != nil {
			return nil, err
		}
		tgt, err := BreachProbability(target, *m.breachCurve)
		if err != nil {
			return nil, err
		}
		result.CurrentBreachProbability = &cur
		result.TargetBreachProbability = &tgt
	}

	return result, nil
}
