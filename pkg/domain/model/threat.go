package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// ThreatScenario is a FAIR-quantified risk event. It is maintained by
// organization staff and read-only to the quantification engine.
type ThreatScenario struct {
	ID                     types.ThreatScenarioID
	OrganizationID         types.OrganizationID
	Name                   string
	Description            string
	ThreatEventFrequency   float64 // expected attempts per year
	VulnerabilityFactor    float64 // probability an attempt succeeds, [0,1]
	PrimaryLossMagnitude   float64
	SecondaryLossMagnitude float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Validate checks the FAIR parameter domains
func (t *ThreatScenario) Validate() error {
	if t.Name == "" {
		return goerr.Wrap(ErrValidation, "threat scenario name is required")
	}
	if err := t.OrganizationID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid organization ID", goerr.V("cause", err.Error()))
	}
	if err := ValidateNonNegative("threat_event_frequency", t.ThreatEventFrequency); err != nil {
		return err
	}
	if err := ValidateUnitInterval("vulnerability_factor", t.VulnerabilityFactor); err != nil {
		return err
	}
	if err := ValidateNonNegative("primary_loss_magnitude", t.PrimaryLossMagnitude); err != nil {
		return err
	}
	if err := ValidateNonNegative("secondary_loss_magnitude", t.SecondaryLossMagnitude); err != nil {
		return err
	}
	return nil
}

// LossExposure holds the values derived from a ThreatScenario
type LossExposure struct {
	ThreatScenarioID   types.ThreatScenarioID
	Name               string
	LossEventFrequency float64
	AnnualLossExposure float64
}

// OrganizationExposure is the ALE of every threat scenario of an
// organization together with their sum
type OrganizationExposure struct {
	OrganizationID types.OrganizationID
	Total          float64
	Threats        []*LossExposure
}
