package interfaces

import (
	"context"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

type ThreatScenarioRepository interface {
	// Create creates a new threat scenario, generating an ID when empty
	Create(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error)

	// Get retrieves a threat scenario by ID
	Get(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) (*model.ThreatScenario, error)

	// List retrieves all threat scenarios of an organization ordered by CreatedAt
	List(ctx context.Context, orgID types.OrganizationID) ([]*model.ThreatScenario, error)

	// Update updates an existing threat scenario
	Update(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error)

	// Delete deletes a threat scenario by ID
	Delete(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) error
}
