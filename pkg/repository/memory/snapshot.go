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

type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[types.OrganizationID][]*model.RiskSnapshot
	ids       map[types.SnapshotID]struct{}
}

func newSnapshotRepository() *snapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[types.OrganizationID][]*model.RiskSnapshot),
		ids:       make(map[types.SnapshotID]struct{}),
	}
}

func copySnapshot(s *model.RiskSnapshot) *model.RiskSnapshot {
	copied := *s
	return &copied
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copySnapshot(snapshot)
	if created.ID == "" {
		created.ID = types.NewSnapshotID()
	}
	if _, ok := r.ids[created.ID]; ok {
		return nil, goerr.Wrap(ErrAlreadyExists, "snapshot already exists", goerr.V("id", created.ID))
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}
	r.ids[created.ID] = struct{}{}

	history := append(r.snapshots[created.OrganizationID], created)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	r.snapshots[created.OrganizationID] = history

	return copySnapshot(created), nil
}

func (r *snapshotRepository) List(ctx context.Context, orgID types.OrganizationID) ([]*model.RiskSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.snapshots[orgID]
	snapshots := make([]*model.RiskSnapshot, 0, len(history))
	for _, s := range history {
		snapshots = append(snapshots, copySnapshot(s))
	}
	return snapshots, nil
}

func (r *snapshotRepository) Latest(ctx context.Context, orgID types.OrganizationID) (*model.RiskSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.snapshots[orgID]
	if len(history) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "snapshot not found", goerr.V("organization_id", orgID))
	}
	return copySnapshot(history[len(history)-1]), nil
}
