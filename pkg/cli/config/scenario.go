package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// ScenarioFile describes a what-if comparison: a baseline, or the
// organization to resolve one for, and the scenarios to evaluate
type ScenarioFile struct {
	Baseline     *BaselineEntry  `toml:"baseline"`
	Organization *OrgEntry       `toml:"organization"`
	Scenarios    []ScenarioEntry `toml:"scenario"`
}

// BaselineEntry is an explicit organizational state
type BaselineEntry struct {
	RiskExposure  float64 `toml:"risk_exposure"`
	MaturityLevel float64 `toml:"maturity_level"`
}

// OrgEntry points at an organization whose baseline is read from the repository
type OrgEntry struct {
	ID                    string  `toml:"id"`
	FallbackMaturityLevel float64 `toml:"fallback_maturity_level"`
}

// ScenarioEntry represents one what-if scenario
type ScenarioEntry struct {
	ID                  string  `toml:"id"`
	Name                string  `toml:"name"`
	TargetMaturityLevel float64 `toml:"target_maturity_level"`
	InvestmentAmount    float64 `toml:"investment_amount"`
	TimeframeMonths     float64 `toml:"timeframe_months"`
}

// Validate checks if the ScenarioFile is valid
func (f *ScenarioFile) Validate() error {
	if f.Baseline == nil && (f.Organization == nil || f.Organization.ID == "") {
		return goerr.Wrap(ErrMissingBaseline, "scenario file has neither baseline nor organization")
	}

	ids := make(map[string]bool)
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return goerr.Wrap(ErrMissingName, "scenario name is required", goerr.V(IndexKey, i))
		}
		if s.ID == "" {
			continue
		}
		if ids[s.ID] {
			return goerr.Wrap(ErrDuplicateScenario, "scenario ID appears more than once", goerr.V(ScenarioIDKey, s.ID))
		}
		ids[s.ID] = true
	}
	return nil
}

// LoadScenarioFile loads a comparison definition from a TOML file
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scenario file", goerr.V(ConfigPathKey, path))
	}

	var file ScenarioFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML scenario file", goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "scenario file validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}

// ToBaseline converts the explicit baseline, if any
func (f *ScenarioFile) ToBaseline() *model.Baseline {
	if f.Baseline == nil {
		return nil
	}
	return &model.Baseline{
		RiskExposure:  f.Baseline.RiskExposure,
		MaturityLevel: types.MaturityLevel(f.Baseline.MaturityLevel),
	}
}

// ToScenarios converts the entries to validated domain scenarios
func (f *ScenarioFile) ToScenarios() ([]*model.WhatIfScenario, error) {
	scenarios := make([]*model.WhatIfScenario, 0, len(f.Scenarios))
	for i, s := range f.Scenarios {
		scenario, err := model.NewWhatIfScenario(
			types.ScenarioID(s.ID),
			s.Name,
			types.MaturityLevel(s.TargetMaturityLevel),
			s.InvestmentAmount,
			s.TimeframeMonths,
		)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid scenario", goerr.V(IndexKey, i))
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
