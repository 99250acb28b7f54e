package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func validateOrganizationID(orgID types.OrganizationID) error {
	if err := orgID.Validate(); err != nil {
		return goerr.Wrap(model.ErrValidation, "invalid organization ID",
			goerr.V(OrganizationIDKey, orgID),
			goerr.V("cause", err.Error()),
		)
	}
	return nil
}
