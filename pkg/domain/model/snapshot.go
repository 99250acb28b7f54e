package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// RiskSnapshot is a point-in-time record of an organization's risk posture.
// Snapshots are append-only and never mutated once stored.
type RiskSnapshot struct {
	ID                types.SnapshotID
	OrganizationID    types.OrganizationID
	TotalRiskExposure float64
	MaturityLevel     types.MaturityLevel
	ControlPassRate   float64 // percentage, 0-100
	Timestamp         time.Time
}

// Validate checks if the RiskSnapshot is valid
func (s *RiskSnapshot) Validate() error {
	if err := s.OrganizationID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid organization ID", goerr.V("cause", err.Error()))
	}
	if err := ValidateNonNegative("total_risk_exposure", s.TotalRiskExposure); err != nil {
		return err
	}
	if err := s.MaturityLevel.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid maturity level", goerr.V("cause", err.Error()))
	}
	if err := ValidateNonNegative("control_pass_rate", s.ControlPassRate); err != nil {
		return err
	}
	if s.ControlPassRate > 100 {
		return goerr.Wrap(ErrValidation, "control pass rate must be between 0 and 100", goerr.V(ValueKey, s.ControlPassRate))
	}
	return nil
}

// Baseline returns the organizational state the projection starts from
func (s *RiskSnapshot) Baseline() Baseline {
	return Baseline{
		RiskExposure:  s.TotalRiskExposure,
		MaturityLevel: s.MaturityLevel,
	}
}
