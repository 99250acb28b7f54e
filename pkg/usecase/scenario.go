package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

type session struct {
	mu        sync.Mutex
	scenarios *quant.ScenarioSet
}

// ScenarioUseCase manages in-memory comparison sessions. Each session owns
// a ScenarioSet and serializes access to it; Compare evaluates a copy of
// the list so concurrent edits never race with an evaluation.
type ScenarioUseCase struct {
	model *quant.Model

	mu       sync.RWMutex
	sessions map[types.SessionID]*session
}

func NewScenarioUseCase(m *quant.Model) *ScenarioUseCase {
	return &ScenarioUseCase{
		model:    m,
		sessions: make(map[types.SessionID]*session),
	}
}

func (uc *ScenarioUseCase) getSession(id types.SessionID) (*session, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	s, ok := uc.sessions[id]
	if !ok {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	return s, nil
}

// CreateSession starts a session seeded with the given scenarios
func (uc *ScenarioUseCase) CreateSession(ctx context.Context, scenarios ...*model.WhatIfScenario) (types.SessionID, error) {
	set, err := quant.NewScenarioSet(scenarios...)
	if err != nil {
		return "", err
	}

	id := types.NewSessionID()

	uc.mu.Lock()
	uc.sessions[id] = &session{scenarios: set}
	uc.mu.Unlock()

	logging.From(ctx).Info("comparison session created", "session_id", id, "scenarios", set.Len())
	return id, nil
}

func (uc *ScenarioUseCase) DeleteSession(ctx context.Context, id types.SessionID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.sessions[id]; !ok {
		return goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	delete(uc.sessions, id)

	logging.From(ctx).Info("comparison session deleted", "session_id", id)
	return nil
}

func (uc *ScenarioUseCase) AddScenario(ctx context.Context, id types.SessionID, scenario *model.WhatIfScenario) (*model.WhatIfScenario, error) {
	s, err := uc.getSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scenarios.Add(scenario); err != nil {
		return nil, goerr.Wrap(err, "failed to add scenario", goerr.V(SessionIDKey, id))
	}
	return s.scenarios.Get(scenario.ID)
}

func (uc *ScenarioUseCase) UpdateScenario(ctx context.Context, id types.SessionID, scenarioID types.ScenarioID, update model.ScenarioUpdate) (*model.WhatIfScenario, error) {
	s, err := uc.getSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.scenarios.Update(scenarioID, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update scenario", goerr.V(SessionIDKey, id))
	}
	return updated, nil
}

func (uc *ScenarioUseCase) RemoveScenario(ctx context.Context, id types.SessionID, scenarioID types.ScenarioID) error {
	s, err := uc.getSession(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scenarios.Remove(scenarioID); err != nil {
		return goerr.Wrap(err, "failed to remove scenario", goerr.V(SessionIDKey, id))
	}
	return nil
}

func (uc *ScenarioUseCase) ListScenarios(ctx context.Context, id types.SessionID) ([]*model.WhatIfScenario, error) {
	s, err := uc.getSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scenarios.List(), nil
}

// Compare evaluates every scenario of the session against the baseline
func (uc *ScenarioUseCase) Compare(ctx context.Context, id types.SessionID, baseline model.Baseline) (*model.Comparison, error) {
	s, err := uc.getSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	scenarios := s.scenarios.List()
	s.mu.Unlock()

	comparison, err := uc.model.Compare(baseline, scenarios)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compare scenarios", goerr.V(SessionIDKey, id))
	}

	logging.From(ctx).Debug("session compared", "session_id", id, "count", len(comparison.Results))
	return comparison, nil
}
