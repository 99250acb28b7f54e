package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

// CalculatorUseCase exposes the stateless calculations with input
// validation applied before anything reaches the engine.
type CalculatorUseCase struct {
	model *quant.Model
}

func NewCalculatorUseCase(m *quant.Model) *CalculatorUseCase {
	return &CalculatorUseCase{model: m}
}

// FAIRInput holds the raw FAIR primitives of a single threat
type FAIRInput struct {
	ThreatEventFrequency   float64
	VulnerabilityFactor    float64
	PrimaryLossMagnitude   float64
	SecondaryLossMagnitude float64
}

func (uc *CalculatorUseCase) LossExposure(ctx context.Context, input FAIRInput) (*model.LossExposure, error) {
	lef, err := quant.LossEventFrequency(input.ThreatEventFrequency, input.VulnerabilityFactor)
	if err != nil {
		return nil, err
	}

	ale, err := quant.AnnualLossExposure(lef, input.PrimaryLossMagnitude, input.SecondaryLossMagnitude)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("loss exposure calculated", "lef", lef, "ale", ale)

	return &model.LossExposure{
		LossEventFrequency: lef,
		AnnualLossExposure: ale,
	}, nil
}

func (uc *CalculatorUseCase) Vulnerability(ctx context.Context, controlEffectiveness, threatCapability float64) (float64, error) {
	return quant.Vulnerability(controlEffectiveness, threatCapability)
}

func (uc *CalculatorUseCase) Project(ctx context.Context, baseline model.Baseline, target types.MaturityLevel) (*model.ProjectionResult, error) {
	result, err := uc.model.Project(baseline.RiskExposure, baseline.MaturityLevel, target)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("projection evaluated",
		"current_level", baseline.MaturityLevel,
		"target_level", target,
		"reduction_factor", result.ReductionFactor,
	)

	return result, nil
}

// Decide computes the decision metrics. Negative or non-finite inputs are
// rejected here because quant.Evaluate assumes validated values.
func (uc *CalculatorUseCase) Decide(ctx context.Context, projectedRiskReduction, investmentAmount, timeframeMonths float64) (*model.DecisionMetrics, error) {
	if err := model.ValidateNonNegative("projected_risk_reduction", projectedRiskReduction); err != nil {
		return nil, err
	}
	if err := quant.ValidateInvestment(investmentAmount, timeframeMonths); err != nil {
		return nil, err
	}

	metrics := quant.Evaluate(projectedRiskReduction, investmentAmount, timeframeMonths)
	return &metrics, nil
}

// Evaluate runs a projection and its decision metrics in one step
func (uc *CalculatorUseCase) Evaluate(ctx context.Context, baseline model.Baseline, scenario *model.WhatIfScenario) (*model.ScenarioResult, error) {
	result, err := uc.model.EvaluateScenario(baseline, scenario)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate scenario", goerr.V(ScenarioIDKey, scenario.ID))
	}
	return result, nil
}

// Compare evaluates an ad-hoc scenario list that is not bound to a session
func (uc *CalculatorUseCase) Compare(ctx context.Context, baseline model.Baseline, scenarios []*model.WhatIfScenario) (*model.Comparison, error) {
	comparison, err := uc.model.Compare(baseline, scenarios)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("scenarios compared", "count", len(comparison.Results))
	return comparison, nil
}
