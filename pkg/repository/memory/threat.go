package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

type threatKey struct {
	orgID types.OrganizationID
	id    types.ThreatScenarioID
}

type threatScenarioRepository struct {
	mu      sync.RWMutex
	threats map[threatKey]*model.ThreatScenario
}

func newThreatScenarioRepository() *threatScenarioRepository {
	return &threatScenarioRepository{
		threats: make(map[threatKey]*model.ThreatScenario),
	}
}

func copyThreat(ts *model.ThreatScenario) *model.ThreatScenario {
	copied := *ts
	return &copied
}

func (r *threatScenarioRepository) Create(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyThreat(ts)
	if created.ID == "" {
		created.ID = types.NewThreatScenarioID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.threats[threatKey{orgID: created.OrganizationID, id: created.ID}] = created
	return copyThreat(created), nil
}

func (r *threatScenarioRepository) Get(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) (*model.ThreatScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts, exists := r.threats[threatKey{orgID: orgID, id: id}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}
	return copyThreat(ts), nil
}

func (r *threatScenarioRepository) List(ctx context.Context, orgID types.OrganizationID) ([]*model.ThreatScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	threats := make([]*model.ThreatScenario, 0)
	for key, ts := range r.threats {
		if key.orgID == orgID {
			threats = append(threats, copyThreat(ts))
		}
	}
	sort.Slice(threats, func(i, j int) bool {
		if threats[i].CreatedAt.Equal(threats[j].CreatedAt) {
			return threats[i].ID < threats[j].ID
		}
		return threats[i].CreatedAt.Before(threats[j].CreatedAt)
	})
	return threats, nil
}

func (r *threatScenarioRepository) Update(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := threatKey{orgID: ts.OrganizationID, id: ts.ID}
	existing, exists := r.threats[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", ts.ID))
	}

	updated := copyThreat(ts)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.threats[key] = updated
	return copyThreat(updated), nil
}

func (r *threatScenarioRepository) Delete(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := threatKey{orgID: orgID, id: id}
	if _, exists := r.threats[key]; !exists {
		return goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}

	delete(r.threats, key)
	return nil
}
