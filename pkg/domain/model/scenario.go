package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// WhatIfScenario is a hypothetical investment case compared against the
// current organizational state.
type WhatIfScenario struct {
	ID                  types.ScenarioID
	Name                string
	TargetMaturityLevel types.MaturityLevel
	InvestmentAmount    float64
	TimeframeMonths     float64
}

// NewWhatIfScenario builds a validated scenario. An empty id is replaced
// with a generated one.
func NewWhatIfScenario(id types.ScenarioID, name string, target types.MaturityLevel, investment, timeframeMonths float64) (*WhatIfScenario, error) {
	if id == "" {
		id = types.NewScenarioID()
	}
	s := &WhatIfScenario{
		ID:                  id,
		Name:                name,
		TargetMaturityLevel: target,
		InvestmentAmount:    investment,
		TimeframeMonths:     timeframeMonths,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the WhatIfScenario is valid
func (s *WhatIfScenario) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid scenario ID", goerr.V("cause", err.Error()))
	}
	if s.Name == "" {
		return goerr.Wrap(ErrValidation, "scenario name is required", goerr.V("id", s.ID))
	}
	if err := s.TargetMaturityLevel.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid target maturity level", goerr.V("id", s.ID), goerr.V("cause", err.Error()))
	}
	if err := ValidateNonNegative("investment_amount", s.InvestmentAmount); err != nil {
		return goerr.Wrap(err, "invalid investment amount", goerr.V("id", s.ID))
	}
	if err := ValidateNonNegative("timeframe_months", s.TimeframeMonths); err != nil {
		return goerr.Wrap(err, "invalid timeframe", goerr.V("id", s.ID))
	}
	return nil
}

// Clone returns a copy of the scenario
func (s *WhatIfScenario) Clone() *WhatIfScenario {
	copied := *s
	return &copied
}

// ScenarioUpdate is a partial update of a WhatIfScenario. Nil fields are left unchanged.
type ScenarioUpdate struct {
	Name                *string
	TargetMaturityLevel *types.MaturityLevel
	InvestmentAmount    *float64
	TimeframeMonths     *float64
}

// Apply returns an updated, validated copy of s
func (u ScenarioUpdate) Apply(s *WhatIfScenario) (*WhatIfScenario, error) {
	updated := s.Clone()
	if u.Name != nil {
		updated.Name = *u.Name
	}
	if u.TargetMaturityLevel != nil {
		updated.TargetMaturityLevel = *u.TargetMaturityLevel
	}
	if u.InvestmentAmount != nil {
		updated.InvestmentAmount = *u.InvestmentAmount
	}
	if u.TimeframeMonths != nil {
		updated.TimeframeMonths = *u.TimeframeMonths
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	return updated, nil
}
