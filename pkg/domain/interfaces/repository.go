package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every backend when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// ErrAlreadyExists is wrapped by every backend when an append-only record
// with the same ID is already stored
var ErrAlreadyExists = goerr.New("already exists")

// Repository defines the interface for data persistence
type Repository interface {
	Snapshot() SnapshotRepository
	ThreatScenario() ThreatScenarioRepository

	Close() error
}
