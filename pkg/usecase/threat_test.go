package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/repository/memory"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

const testOrgID types.OrganizationID = "acme"

func threatFixture(name string, tef, v, primary, secondary float64) *model.ThreatScenario {
	return &model.ThreatScenario{
		OrganizationID:         testOrgID,
		Name:                   name,
		ThreatEventFrequency:   tef,
		VulnerabilityFactor:    v,
		PrimaryLossMagnitude:   primary,
		SecondaryLossMagnitude: secondary,
	}
}

func TestThreatUseCase_CRUD(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	created, err := uc.Threat.Create(ctx, threatFixture("Phishing", 10, 0.5, 100, 50))
	gt.NoError(t, err).Required()
	gt.Value(t, created.ID).NotEqual("")

	got, err := uc.Threat.Get(ctx, testOrgID, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Name).Equal("Phishing")

	got.VulnerabilityFactor = 0.25
	updated, err := uc.Threat.Update(ctx, got)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.VulnerabilityFactor).Equal(0.25)

	list, err := uc.Threat.List(ctx, testOrgID)
	gt.NoError(t, err).Required()
	gt.Array(t, list).Length(1)

	gt.NoError(t, uc.Threat.Delete(ctx, testOrgID, created.ID)).Required()
	_, err = uc.Threat.Get(ctx, testOrgID, created.ID)
	gt.Error(t, err).Is(interfaces.ErrNotFound)
}

func TestThreatUseCase_Create_Validation(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	tests := []struct {
		name   string
		threat *model.ThreatScenario
	}{
		{"missing name", threatFixture("", 1, 0.5, 1, 1)},
		{"negative frequency", threatFixture("x", -1, 0.5, 1, 1)},
		{"vulnerability above one", threatFixture("x", 1, 1.1, 1, 1)},
		{"negative secondary loss", threatFixture("x", 1, 0.5, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Threat.Create(ctx, tt.threat)
			gt.Error(t, err).Is(model.ErrValidation)
		})
	}

	list, err := uc.Threat.List(ctx, testOrgID)
	gt.NoError(t, err).Required()
	gt.Array(t, list).Length(0)
}

func TestThreatUseCase_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("imports all records", func(t *testing.T) {
		uc := usecase.New(memory.New())
		created, err := uc.Threat.Import(ctx, testOrgID, []*model.ThreatScenario{
			{Name: "Ransomware", ThreatEventFrequency: 2, VulnerabilityFactor: 0.5, PrimaryLossMagnitude: 1000},
			{Name: "Insider", ThreatEventFrequency: 1, VulnerabilityFactor: 1, PrimaryLossMagnitude: 10},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, created).Length(2)
		gt.Value(t, created[0].OrganizationID).Equal(testOrgID)
	})

	t.Run("one bad record stores nothing", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Threat.Import(ctx, testOrgID, []*model.ThreatScenario{
			{Name: "Ransomware", ThreatEventFrequency: 2, VulnerabilityFactor: 0.5},
			{Name: "Broken", ThreatEventFrequency: 2, VulnerabilityFactor: 2},
		})
		gt.Error(t, err).Is(model.ErrValidation)

		list, err := uc.Threat.List(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})
}

func TestThreatUseCase_OrganizationExposure(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	_, err := uc.Threat.Create(ctx, threatFixture("Phishing", 10, 0.5, 100, 50))
	gt.NoError(t, err).Required()
	_, err = uc.Threat.Create(ctx, threatFixture("Ransomware", 4, 0.25, 1000, 0))
	gt.NoError(t, err).Required()

	exposure, err := uc.Threat.OrganizationExposure(ctx, testOrgID)
	gt.NoError(t, err).Required()
	gt.Value(t, exposure.OrganizationID).Equal(testOrgID)
	gt.Array(t, exposure.Threats).Length(2)
	gt.Value(t, exposure.Total).Equal(1750.0)

	t.Run("empty organization has zero exposure", func(t *testing.T) {
		exposure, err := uc.Threat.OrganizationExposure(ctx, "empty-org")
		gt.NoError(t, err).Required()
		gt.Value(t, exposure.Total).Equal(0.0)
		gt.Array(t, exposure.Threats).Length(0)
	})

	t.Run("invalid organization ID", func(t *testing.T) {
		_, err := uc.Threat.OrganizationExposure(ctx, "")
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
	})
}
