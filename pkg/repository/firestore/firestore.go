package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = interfaces.ErrNotFound

// ErrAlreadyExists is returned when a snapshot document is already stored
var ErrAlreadyExists = interfaces.ErrAlreadyExists

type Firestore struct {
	client   *firestore.Client
	snapshot *snapshotRepository
	threat   *threatScenarioRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.snapshot.collectionPrefix = prefix
		f.threat.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:   client,
		snapshot: newSnapshotRepository(client),
		threat:   newThreatScenarioRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Snapshot() interfaces.SnapshotRepository {
	return f.snapshot
}

func (f *Firestore) ThreatScenario() interfaces.ThreatScenarioRepository {
	return f.threat
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// Collection names before the optional prefix is applied
const (
	SnapshotsCollection       = "snapshots"
	ThreatScenariosCollection = "threat_scenarios"
)

// CollectionName returns the collection name with the prefix applied
func CollectionName(prefix, name string) string {
	return collectionName(prefix, name)
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
