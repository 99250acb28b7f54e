package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// BaselineSource tells where a resolved baseline came from
type BaselineSource string

const (
	BaselineSourceSnapshot BaselineSource = "snapshot"
	BaselineSourceThreats  BaselineSource = "threat_scenarios"
)

// ResolvedBaseline is a baseline plus its provenance
type ResolvedBaseline struct {
	model.Baseline
	Source   BaselineSource
	Snapshot *model.RiskSnapshot
	Exposure *model.OrganizationExposure
}

// ResolveBaseline determines the starting point of a projection for an
// organization. The latest snapshot wins. Without history the ALE total of
// the organization's threat scenarios is combined with fallbackMaturity,
// which must then be a valid level; a zero fallbackMaturity means none.
func (uc *UseCases) ResolveBaseline(ctx context.Context, orgID types.OrganizationID, fallbackMaturity types.MaturityLevel) (*ResolvedBaseline, error) {
	if err := validateOrganizationID(orgID); err != nil {
		return nil, err
	}

	var (
		snapshot *model.RiskSnapshot
		threats  []*model.ThreatScenario
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s, err := uc.repo.Snapshot().Latest(egCtx, orgID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil
			}
			return goerr.Wrap(err, "failed to get latest snapshot")
		}
		snapshot = s
		return nil
	})
	eg.Go(func() error {
		list, err := uc.repo.ThreatScenario().List(egCtx, orgID)
		if err != nil {
			return goerr.Wrap(err, "failed to list threat scenarios")
		}
		threats = list
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve baseline", goerr.V(OrganizationIDKey, orgID))
	}

	exposure, err := exposureOf(orgID, threats)
	if err != nil {
		return nil, err
	}

	if snapshot != nil {
		logging.From(ctx).Debug("baseline resolved from snapshot",
			"organization_id", orgID,
			"snapshot_id", snapshot.ID,
		)
		return &ResolvedBaseline{
			Baseline: snapshot.Baseline(),
			Source:   BaselineSourceSnapshot,
			Snapshot: snapshot,
			Exposure: exposure,
		}, nil
	}

	if fallbackMaturity == 0 {
		return nil, goerr.Wrap(ErrBaselineNotFound, "no snapshot recorded and no maturity level given",
			goerr.V(OrganizationIDKey, orgID))
	}
	if err := fallbackMaturity.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "invalid fallback maturity level",
			goerr.V(OrganizationIDKey, orgID),
			goerr.V("cause", err.Error()),
		)
	}

	logging.From(ctx).Debug("baseline resolved from threat scenarios",
		"organization_id", orgID,
		"threat_count", len(threats),
		"total", exposure.Total,
	)

	return &ResolvedBaseline{
		Baseline: model.Baseline{
			RiskExposure:  exposure.Total,
			MaturityLevel: fallbackMaturity,
		},
		Source:   BaselineSourceThreats,
		Exposure: exposure,
	}, nil
}
