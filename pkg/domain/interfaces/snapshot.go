package interfaces

import (
	"context"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// SnapshotRepository stores the append-only risk snapshot history.
// There is intentionally no update or delete.
type SnapshotRepository interface {
	// Append stores a new snapshot, assigning ID and Timestamp when empty
	Append(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error)

	// List returns all snapshots of an organization ordered by Timestamp ascending
	List(ctx context.Context, orgID types.OrganizationID) ([]*model.RiskSnapshot, error)

	// Latest returns the most recent snapshot of an organization
	Latest(ctx context.Context, orgID types.OrganizationID) (*model.RiskSnapshot, error)
}
