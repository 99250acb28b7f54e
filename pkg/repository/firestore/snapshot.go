package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type snapshotDocument struct {
	ID                string    `firestore:"id"`
	OrganizationID    string    `firestore:"organization_id"`
	TotalRiskExposure float64   `firestore:"total_risk_exposure"`
	MaturityLevel     float64   `firestore:"maturity_level"`
	ControlPassRate   float64   `firestore:"control_pass_rate"`
	Timestamp         time.Time `firestore:"timestamp"`
}

type snapshotRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSnapshotRepository(client *firestore.Client) *snapshotRepository {
	return &snapshotRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *snapshotRepository) snapshotsCollection() string {
	return collectionName(r.collectionPrefix, SnapshotsCollection)
}

func snapshotToDocument(s *model.RiskSnapshot) *snapshotDocument {
	return &snapshotDocument{
		ID:                string(s.ID),
		OrganizationID:    string(s.OrganizationID),
		TotalRiskExposure: s.TotalRiskExposure,
		MaturityLevel:     float64(s.MaturityLevel),
		ControlPassRate:   s.ControlPassRate,
		Timestamp:         s.Timestamp,
	}
}

func snapshotToModel(doc *snapshotDocument) *model.RiskSnapshot {
	return &model.RiskSnapshot{
		ID:                types.SnapshotID(doc.ID),
		OrganizationID:    types.OrganizationID(doc.OrganizationID),
		TotalRiskExposure: doc.TotalRiskExposure,
		MaturityLevel:     types.MaturityLevel(doc.MaturityLevel),
		ControlPassRate:   doc.ControlPassRate,
		Timestamp:         doc.Timestamp,
	}
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error) {
	created := *snapshot
	if created.ID == "" {
		created.ID = types.NewSnapshotID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	doc := snapshotToDocument(&created)
	docRef := r.client.Collection(r.snapshotsCollection()).Doc(doc.ID)
	// Create fails if the document exists, keeping history append-only
	if _, err := docRef.Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "snapshot already exists", goerr.V("id", doc.ID), goerr.V("cause", err.Error()))
		}
		return nil, goerr.Wrap(err, "failed to append snapshot", goerr.V("id", doc.ID))
	}

	return snapshotToModel(doc), nil
}

func (r *snapshotRepository) query(ctx context.Context, q firestore.Query) ([]*model.RiskSnapshot, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var snapshots []*model.RiskSnapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshots")
		}

		var sDoc snapshotDocument
		if err := doc.DataTo(&sDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal snapshot", goerr.V("id", doc.Ref.ID))
		}
		snapshots = append(snapshots, snapshotToModel(&sDoc))
	}

	return snapshots, nil
}

func (r *snapshotRepository) List(ctx context.Context, orgID types.OrganizationID) ([]*model.RiskSnapshot, error) {
	q := r.client.Collection(r.snapshotsCollection()).
		Where("organization_id", "==", string(orgID)).
		OrderBy("timestamp", firestore.Asc)

	snapshots, err := r.query(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list snapshots", goerr.V("organization_id", orgID))
	}
	if snapshots == nil {
		snapshots = []*model.RiskSnapshot{}
	}
	return snapshots, nil
}

func (r *snapshotRepository) Latest(ctx context.Context, orgID types.OrganizationID) (*model.RiskSnapshot, error) {
	q := r.client.Collection(r.snapshotsCollection()).
		Where("organization_id", "==", string(orgID)).
		OrderBy("timestamp", firestore.Desc).
		Limit(1)

	snapshots, err := r.query(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest snapshot", goerr.V("organization_id", orgID))
	}
	if len(snapshots) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "snapshot not found", goerr.V("organization_id", orgID))
	}
	return snapshots[0], nil
}
