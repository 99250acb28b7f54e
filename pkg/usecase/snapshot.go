package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

// SnapshotUseCase records and reads the append-only risk history of an
// organization. There is no way to change a recorded snapshot.
type SnapshotUseCase struct {
	repo interfaces.Repository
}

func NewSnapshotUseCase(repo interfaces.Repository) *SnapshotUseCase {
	return &SnapshotUseCase{repo: repo}
}

// Record validates and appends a snapshot. ID and Timestamp are assigned
// by the repository when empty.
func (uc *SnapshotUseCase) Record(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Snapshot().Append(ctx, snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record snapshot", goerr.V(OrganizationIDKey, snapshot.OrganizationID))
	}

	logging.From(ctx).Info("risk snapshot recorded",
		"organization_id", created.OrganizationID,
		"snapshot_id", created.ID,
		"total_risk_exposure", created.TotalRiskExposure,
		"maturity_level", created.MaturityLevel,
	)

	return created, nil
}

func (uc *SnapshotUseCase) List(ctx context.Context, orgID types.OrganizationID) ([]*model.RiskSnapshot, error) {
	if err := validateOrganizationID(orgID); err != nil {
		return nil, err
	}

	snapshots, err := uc.repo.Snapshot().List(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list snapshots", goerr.V(OrganizationIDKey, orgID))
	}
	return snapshots, nil
}

// Latest returns the most recent snapshot. The error wraps
// interfaces.ErrNotFound when the organization has no history.
func (uc *SnapshotUseCase) Latest(ctx context.Context, orgID types.OrganizationID) (*model.RiskSnapshot, error) {
	if err := validateOrganizationID(orgID); err != nil {
		return nil, err
	}

	snapshot, err := uc.repo.Snapshot().Latest(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest snapshot", goerr.V(OrganizationIDKey, orgID))
	}
	return snapshot, nil
}
