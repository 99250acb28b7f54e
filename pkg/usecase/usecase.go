package usecase

import (
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/quant"
)

type UseCases struct {
	repo       interfaces.Repository
	model      *quant.Model
	Calculator *CalculatorUseCase
	Snapshot   *SnapshotUseCase
	Threat     *ThreatUseCase
	Scenario   *ScenarioUseCase
}

type Option func(*UseCases)

// WithModel sets the projection model. quant.DefaultModel is used when omitted.
func WithModel(m *quant.Model) Option {
	return func(uc *UseCases) {
		uc.model = m
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.model == nil {
		uc.model = quant.DefaultModel()
	}

	uc.Calculator = NewCalculatorUseCase(uc.model)
	uc.Snapshot = NewSnapshotUseCase(repo)
	uc.Threat = NewThreatUseCase(repo)
	uc.Scenario = NewScenarioUseCase(uc.model)

	return uc
}

// Model returns the projection model shared by all use cases
func (uc *UseCases) Model() *quant.Model {
	return uc.model
}
