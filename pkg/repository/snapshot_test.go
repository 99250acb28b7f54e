package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/repository/firestore"
	"github.com/secmon-lab/riskquant/pkg/repository/memory"
)

func runSnapshotRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orgID := newOrgID()

		created, err := repo.Snapshot().Append(ctx, &model.RiskSnapshot{
			OrganizationID:    orgID,
			TotalRiskExposure: 300,
			MaturityLevel:     2,
			ControlPassRate:   62.5,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual("")
		gt.Bool(t, created.Timestamp.IsZero()).False()
		gt.Value(t, created.OrganizationID).Equal(orgID)
		gt.Value(t, created.TotalRiskExposure).Equal(300.0)
		gt.Value(t, created.ControlPassRate).Equal(62.5)
	})

	t.Run("List returns history ordered by timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orgID := newOrgID()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		// Appended out of order on purpose
		for _, offset := range []int{2, 0, 1} {
			_, err := repo.Snapshot().Append(ctx, &model.RiskSnapshot{
				OrganizationID:    orgID,
				TotalRiskExposure: float64(100 * (offset + 1)),
				MaturityLevel:     2,
				Timestamp:         base.Add(time.Duration(offset) * time.Hour),
			})
			gt.NoError(t, err).Required()
		}

		history, err := repo.Snapshot().List(ctx, orgID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(3)
		gt.Value(t, history[0].TotalRiskExposure).Equal(100.0)
		gt.Value(t, history[1].TotalRiskExposure).Equal(200.0)
		gt.Value(t, history[2].TotalRiskExposure).Equal(300.0)
	})

	t.Run("List isolates organizations", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orgA := newOrgID()
		orgB := newOrgID()

		_, err := repo.Snapshot().Append(ctx, &model.RiskSnapshot{OrganizationID: orgA, TotalRiskExposure: 10, MaturityLevel: 1})
		gt.NoError(t, err).Required()

		history, err := repo.Snapshot().List(ctx, orgB)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(0)
	})

	t.Run("Latest returns the most recent snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orgID := newOrgID()
		base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := repo.Snapshot().Append(ctx, &model.RiskSnapshot{
			OrganizationID: orgID, TotalRiskExposure: 500, MaturityLevel: 3, Timestamp: base.Add(time.Hour),
		})
		gt.NoError(t, err).Required()
		_, err = repo.Snapshot().Append(ctx, &model.RiskSnapshot{
			OrganizationID: orgID, TotalRiskExposure: 800, MaturityLevel: 2, Timestamp: base,
		})
		gt.NoError(t, err).Required()

		latest, err := repo.Snapshot().Latest(ctx, orgID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.TotalRiskExposure).Equal(500.0)
		gt.Value(t, latest.MaturityLevel.Float64()).Equal(3.0)
	})

	t.Run("Latest returns ErrNotFound for empty history", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Snapshot().Latest(ctx, newOrgID())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("Append rejects an existing snapshot ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orgID := newOrgID()

		created, err := repo.Snapshot().Append(ctx, &model.RiskSnapshot{OrganizationID: orgID, TotalRiskExposure: 300, MaturityLevel: 2})
		gt.NoError(t, err).Required()

		_, err = repo.Snapshot().Append(ctx, &model.RiskSnapshot{
			ID:                created.ID,
			OrganizationID:    orgID,
			TotalRiskExposure: 100,
			MaturityLevel:     4,
		})
		gt.Error(t, err).Is(interfaces.ErrAlreadyExists)

		history, err := repo.Snapshot().List(ctx, orgID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
		gt.Value(t, history[0].TotalRiskExposure).Equal(300.0)
	})

	t.Run("returned snapshots do not alias stored data", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orgID := newOrgID()

		created, err := repo.Snapshot().Append(ctx, &model.RiskSnapshot{OrganizationID: orgID, TotalRiskExposure: 42, MaturityLevel: 1})
		gt.NoError(t, err).Required()
		created.TotalRiskExposure = 0

		latest, err := repo.Snapshot().Latest(ctx, orgID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.TotalRiskExposure).Equal(42.0)
	})
}

func TestMemorySnapshotRepository(t *testing.T) {
	runSnapshotRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreSnapshotRepository(t *testing.T) {
	runSnapshotRepositoryTest(t, newFirestoreRepository)
}
