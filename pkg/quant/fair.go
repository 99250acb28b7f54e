// Package quant turns compliance and maturity data into financial risk
// figures. Every function is pure: identical inputs give bit-identical
// outputs and nothing is cached or logged. Out-of-range inputs are
// rejected with model.ErrValidation, never clamped.
package quant

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// LossEventFrequency returns tef × vulnerability
func LossEventFrequency(tef, vulnerability float64) (float64, error) {
	if err := model.ValidateNonNegative("threat_event_frequency", tef); err != nil {
		return 0, err
	}
	if err := model.ValidateUnitInterval("vulnerability", vulnerability); err != nil {
		return 0, err
	}
	return tef * vulnerability, nil
}

// Vulnerability returns (1 − controlEffectiveness) × threatCapability
func Vulnerability(controlEffectiveness, threatCapability float64) (float64, error) {
	if err := model.ValidateUnitInterval("control_effectiveness", controlEffectiveness); err != nil {
		return 0, err
	}
	if err := model.ValidateUnitInterval("threat_capability", threatCapability); err != nil {
		return 0, err
	}
	return (1 - controlEffectiveness) * threatCapability, nil
}

// AnnualLossExposure returns lef × (primaryLoss + secondaryLoss)
func AnnualLossExposure(lef, primaryLoss, secondaryLoss float64) (float64, error) {
	if err := model.ValidateNonNegative("loss_event_frequency", lef); err != nil {
		return 0, err
	}
	if err := model.ValidateNonNegative("primary_loss", primaryLoss); err != nil {
		return 0, err
	}
	if err := model.ValidateNonNegative("secondary_loss", secondaryLoss); err != nil {
		return 0, err
	}
	return lef * (primaryLoss + secondaryLoss), nil
}

// EvaluateThreat runs the FAIR chain for one threat scenario
func EvaluateThreat(ts *model.ThreatScenario) (*model.LossExposure, error) {
	if err := ts.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid threat scenario", goerr.V("id", ts.ID))
	}

	lef, err := LossEventFrequency(ts.ThreatEventFrequency, ts.VulnerabilityFactor)
	if err != nil {
		return nil, err
	}
	ale, err := AnnualLossExposure(lef, ts.PrimaryLossMagnitude, ts.SecondaryLossMagnitude)
	if err != nil {
		return nil, err
	}

	return &model.LossExposure{
		ThreatScenarioID:   ts.ID,
		Name:               ts.Name,
		LossEventFrequency: lef,
		AnnualLossExposure: ale,
	}, nil
}

// TotalAnnualLossExposure sums ALE across threat scenarios, in input order
func TotalAnnualLossExposure(scenarios []*model.ThreatScenario) (float64, []*model.LossExposure, error) {
	exposures := make([]*model.LossExposure, 0, len(scenarios))
	var total float64
	for _, ts := range scenarios {
		exp, err := EvaluateThreat(ts)
		if err != nil {
			return 0, nil, err
		}
		total += exp.AnnualLossExposure
		exposures = append(exposures, exp)
	}
	return total, exposures, nil
}
