package quant

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// EvaluateScenario runs the projection and the decision metrics for one
// scenario against the baseline.
func (m *Model) EvaluateScenario(baseline model.Baseline, scenario *model.WhatIfScenario) (*model.ScenarioResult, error) {
	if scenario == nil {
		return nil, goerr.Wrap(model.ErrValidation, "scenario is nil")
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	projection, err := m.Project(baseline.RiskExposure, baseline.MaturityLevel, scenario.TargetMaturityLevel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to project scenario", goerr.V(ScenarioIDKey, scenario.ID))
	}

	return &model.ScenarioResult{
		ScenarioID:          scenario.ID,
		Name:                scenario.Name,
		TargetMaturityLevel: scenario.TargetMaturityLevel,
		InvestmentAmount:    scenario.InvestmentAmount,
		TimeframeMonths:     scenario.TimeframeMonths,
		Projection:          *projection,
		Metrics:             Evaluate(projection.ProjectedRiskReduction, scenario.InvestmentAmount, scenario.TimeframeMonths),
	}, nil
}

// Compare evaluates every scenario against the same baseline. Results keep
// the input order; sorting is left to the presentation layer. The current
// state row is the baseline projected onto itself with no investment.
func (m *Model) Compare(baseline model.Baseline, scenarios []*model.WhatIfScenario) (*model.Comparison, error) {
	if err := model.ValidateNonNegative("baseline_risk_exposure", baseline.RiskExposure); err != nil {
		return nil, err
	}
	if err := validateLevel("baseline_maturity_level", baseline.MaturityLevel); err != nil {
		return nil, err
	}

	current, err := m.Project(baseline.RiskExposure, baseline.MaturityLevel, baseline.MaturityLevel)
	if err != nil {
		return nil, err
	}

	comparison := &model.Comparison{
		Baseline: baseline,
		CurrentState: model.ScenarioResult{
			ScenarioID:          model.CurrentStateID,
			Name:                "Current State",
			TargetMaturityLevel: baseline.MaturityLevel,
			Projection:          *current,
			Metrics:             Evaluate(0, 0, 0),
		},
		Results: make([]model.ScenarioResult, 0, len(scenarios)),
	}

	seen := make(map[types.ScenarioID]bool, len(scenarios))
	for i, scenario := range scenarios {
		if scenario == nil {
			return nil, goerr.Wrap(model.ErrValidation, "scenario is nil", goerr.V("index", i))
		}
		if seen[scenario.ID] {
			return nil, goerr.Wrap(ErrDuplicateScenario, "scenario ID appears more than once", goerr.V(ScenarioIDKey, scenario.ID))
		}
		seen[scenario.ID] = true

		result, err := m.EvaluateScenario(baseline, scenario)
		if err != nil {
			return nil, err
		}
		comparison.Results = append(comparison.Results, *result)
	}

	return comparison, nil
}

// ScenarioSet is an ordered collection of what-if scenarios with unique
// IDs. It is not safe for concurrent use; owners that share a set across
// goroutines must serialize access.
type ScenarioSet struct {
	scenarios []*model.WhatIfScenario
}

// NewScenarioSet builds a set from the given scenarios
func NewScenarioSet(scenarios ...*model.WhatIfScenario) (*ScenarioSet, error) {
	set := &ScenarioSet{}
	for _, s := range scenarios {
		if err := set.Add(s); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (s *ScenarioSet) indexOf(id types.ScenarioID) int {
	for i, sc := range s.scenarios {
		if sc.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a validated copy of the scenario
func (s *ScenarioSet) Add(scenario *model.WhatIfScenario) error {
	if scenario == nil {
		return goerr.Wrap(model.ErrValidation, "scenario is nil")
	}
	if err := scenario.Validate(); err != nil {
		return err
	}
	if s.indexOf(scenario.ID) >= 0 {
		return goerr.Wrap(ErrDuplicateScenario, "scenario already exists", goerr.V(ScenarioIDKey, scenario.ID))
	}
	s.scenarios = append(s.scenarios, scenario.Clone())
	return nil
}

// Remove deletes the scenario with the given ID
func (s *ScenarioSet) Remove(id types.ScenarioID) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return goerr.Wrap(ErrScenarioNotFound, "cannot remove scenario", goerr.V(ScenarioIDKey, id))
	}
	s.scenarios = append(s.scenarios[:idx], s.scenarios[idx+1:]...)
	return nil
}

// Update applies a partial update in place, keeping the scenario's position
func (s *ScenarioSet) Update(id types.ScenarioID, update model.ScenarioUpdate) (*model.WhatIfScenario, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, goerr.Wrap(ErrScenarioNotFound, "cannot update scenario", goerr.V(ScenarioIDKey, id))
	}

	updated, err := update.Apply(s.scenarios[idx])
	if err != nil {
		return nil, err
	}
	s.scenarios[idx] = updated
	return updated.Clone(), nil
}

// Get returns a copy of the scenario with the given ID
func (s *ScenarioSet) Get(id types.ScenarioID) (*model.WhatIfScenario, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, goerr.Wrap(ErrScenarioNotFound, "scenario not found", goerr.V(ScenarioIDKey, id))
	}
	return s.scenarios[idx].Clone(), nil
}

// List returns copies of all scenarios in insertion order
func (s *ScenarioSet) List() []*model.WhatIfScenario {
	list := make([]*model.WhatIfScenario, len(s.scenarios))
	for i, sc := range s.scenarios {
		list[i] = sc.Clone()
	}
	return list
}

// Len returns the number of scenarios
func (s *ScenarioSet) Len() int {
	return len(s.scenarios)
}

// Compare evaluates the whole set against the baseline
func (s *ScenarioSet) Compare(m *Model, baseline model.Baseline) (*model.Comparison, error) {
	return m.Compare(baseline, s.List())
}
