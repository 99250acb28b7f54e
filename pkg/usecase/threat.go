package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

type ThreatUseCase struct {
	repo interfaces.Repository
}

func NewThreatUseCase(repo interfaces.Repository) *ThreatUseCase {
	return &ThreatUseCase{repo: repo}
}

func (uc *ThreatUseCase) Create(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.ThreatScenario().Create(ctx, ts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create threat scenario", goerr.V(OrganizationIDKey, ts.OrganizationID))
	}

	logging.From(ctx).Info("threat scenario created",
		"organization_id", created.OrganizationID,
		"threat_scenario_id", created.ID,
		"name", created.Name,
	)

	return created, nil
}

// Import creates every scenario of the list after validating all of them,
// so a single bad record leaves the repository untouched.
func (uc *ThreatUseCase) Import(ctx context.Context, orgID types.OrganizationID, threats []*model.ThreatScenario) ([]*model.ThreatScenario, error) {
	for i, ts := range threats {
		ts.OrganizationID = orgID
		if err := ts.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid threat scenario in import", goerr.V("index", i))
		}
	}

	created := make([]*model.ThreatScenario, 0, len(threats))
	for _, ts := range threats {
		c, err := uc.Create(ctx, ts)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func (uc *ThreatUseCase) Get(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) (*model.ThreatScenario, error) {
	if err := validateOrganizationID(orgID); err != nil {
		return nil, err
	}

	ts, err := uc.repo.ThreatScenario().Get(ctx, orgID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get threat scenario",
			goerr.V(OrganizationIDKey, orgID),
			goerr.V(ThreatScenarioIDKey, id),
		)
	}
	return ts, nil
}

func (uc *ThreatUseCase) List(ctx context.Context, orgID types.OrganizationID) ([]*model.ThreatScenario, error) {
	if err := validateOrganizationID(orgID); err != nil {
		return nil, err
	}

	threats, err := uc.repo.ThreatScenario().List(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list threat scenarios", goerr.V(OrganizationIDKey, orgID))
	}
	return threats, nil
}

func (uc *ThreatUseCase) Update(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.ThreatScenario().Update(ctx, ts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update threat scenario",
			goerr.V(OrganizationIDKey, ts.OrganizationID),
			goerr.V(ThreatScenarioIDKey, ts.ID),
		)
	}

	logging.From(ctx).Info("threat scenario updated",
		"organization_id", updated.OrganizationID,
		"threat_scenario_id", updated.ID,
	)

	return updated, nil
}

func (uc *ThreatUseCase) Delete(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) error {
	if err := validateOrganizationID(orgID); err != nil {
		return err
	}

	if err := uc.repo.ThreatScenario().Delete(ctx, orgID, id); err != nil {
		return goerr.Wrap(err, "failed to delete threat scenario",
			goerr.V(OrganizationIDKey, orgID),
			goerr.V(ThreatScenarioIDKey, id),
		)
	}

	logging.From(ctx).Info("threat scenario deleted",
		"organization_id", orgID,
		"threat_scenario_id", id,
	)

	return nil
}

// OrganizationExposure derives the ALE of every threat scenario of the
// organization and their total
func (uc *ThreatUseCase) OrganizationExposure(ctx context.Context, orgID types.OrganizationID) (*model.OrganizationExposure, error) {
	threats, err := uc.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return exposureOf(orgID, threats)
}

func exposureOf(orgID types.OrganizationID, threats []*model.ThreatScenario) (*model.OrganizationExposure, error) {
	total, exposures, err := quant.TotalAnnualLossExposure(threats)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to derive loss exposure", goerr.V(OrganizationIDKey, orgID))
	}

	return &model.OrganizationExposure{
		OrganizationID: orgID,
		Total:          total,
		Threats:        exposures,
	}, nil
}
