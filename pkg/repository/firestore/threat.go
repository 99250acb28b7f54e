package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type threatScenarioDocument struct {
	ID                     string    `firestore:"id"`
	OrganizationID         string    `firestore:"organization_id"`
	Name                   string    `firestore:"name"`
	Description            string    `firestore:"description"`
	ThreatEventFrequency   float64   `firestore:"threat_event_frequency"`
	VulnerabilityFactor    float64   `firestore:"vulnerability_factor"`
	PrimaryLossMagnitude   float64   `firestore:"primary_loss_magnitude"`
	SecondaryLossMagnitude float64   `firestore:"secondary_loss_magnitude"`
	CreatedAt              time.Time `firestore:"created_at"`
	UpdatedAt              time.Time `firestore:"updated_at"`
}

type threatScenarioRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newThreatScenarioRepository(client *firestore.Client) *threatScenarioRepository {
	return &threatScenarioRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *threatScenarioRepository) threatsCollection() string {
	return collectionName(r.collectionPrefix, ThreatScenariosCollection)
}

func threatToDocument(ts *model.ThreatScenario) *threatScenarioDocument {
	return &threatScenarioDocument{
		ID:                     string(ts.ID),
		OrganizationID:         string(ts.OrganizationID),
		Name:                   ts.Name,
		Description:            ts.Description,
		ThreatEventFrequency:   ts.ThreatEventFrequency,
		VulnerabilityFactor:    ts.VulnerabilityFactor,
		PrimaryLossMagnitude:   ts.PrimaryLossMagnitude,
		SecondaryLossMagnitude: ts.SecondaryLossMagnitude,
		CreatedAt:              ts.CreatedAt,
		UpdatedAt:              ts.UpdatedAt,
	}
}

func threatToModel(doc *threatScenarioDocument) *model.ThreatScenario {
	return &model.ThreatScenario{
		ID:                     types.ThreatScenarioID(doc.ID),
		OrganizationID:         types.OrganizationID(doc.OrganizationID),
		Name:                   doc.Name,
		Description:            doc.Description,
		ThreatEventFrequency:   doc.ThreatEventFrequency,
		VulnerabilityFactor:    doc.VulnerabilityFactor,
		PrimaryLossMagnitude:   doc.PrimaryLossMagnitude,
		SecondaryLossMagnitude: doc.SecondaryLossMagnitude,
		CreatedAt:              doc.CreatedAt,
		UpdatedAt:              doc.UpdatedAt,
	}
}

func (r *threatScenarioRepository) Create(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error) {
	created := *ts
	if created.ID == "" {
		created.ID = types.NewThreatScenarioID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := threatToDocument(&created)
	docRef := r.client.Collection(r.threatsCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create threat scenario")
	}

	return threatToModel(doc), nil
}

func (r *threatScenarioRepository) get(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) (*firestore.DocumentRef, *threatScenarioDocument, error) {
	docRef := r.client.Collection(r.threatsCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
		}
		return nil, nil, goerr.Wrap(err, "failed to get threat scenario", goerr.V("id", id))
	}

	var tDoc threatScenarioDocument
	if err := doc.DataTo(&tDoc); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to unmarshal threat scenario", goerr.V("id", id))
	}

	// Documents of other organizations are invisible
	if tDoc.OrganizationID != string(orgID) {
		return nil, nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}

	return docRef, &tDoc, nil
}

func (r *threatScenarioRepository) Get(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) (*model.ThreatScenario, error) {
	_, doc, err := r.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return threatToModel(doc), nil
}

func (r *threatScenarioRepository) List(ctx context.Context, orgID types.OrganizationID) ([]*model.ThreatScenario, error) {
	iter := r.client.Collection(r.threatsCollection()).
		Where("organization_id", "==", string(orgID)).
		Documents(ctx)
	defer iter.Stop()

	threats := []*model.ThreatScenario{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate threat scenarios")
		}

		var tDoc threatScenarioDocument
		if err := doc.DataTo(&tDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal threat scenario")
		}
		threats = append(threats, threatToModel(&tDoc))
	}

	sort.Slice(threats, func(i, j int) bool {
		if threats[i].CreatedAt.Equal(threats[j].CreatedAt) {
			return threats[i].ID < threats[j].ID
		}
		return threats[i].CreatedAt.Before(threats[j].CreatedAt)
	})

	return threats, nil
}

func (r *threatScenarioRepository) Update(ctx context.Context, ts *model.ThreatScenario) (*model.ThreatScenario, error) {
	docRef, existing, err := r.get(ctx, ts.OrganizationID, ts.ID)
	if err != nil {
		return nil, err
	}

	updated := *ts
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc := threatToDocument(&updated)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update threat scenario", goerr.V("id", ts.ID))
	}

	return threatToModel(doc), nil
}

func (r *threatScenarioRepository) Delete(ctx context.Context, orgID types.OrganizationID, id types.ThreatScenarioID) error {
	docRef, _, err := r.get(ctx, orgID, id)
	if err != nil {
		return err
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete threat scenario", goerr.V("id", id))
	}

	return nil
}
