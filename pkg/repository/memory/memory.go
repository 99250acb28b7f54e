package memory

import (
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = interfaces.ErrNotFound

// ErrAlreadyExists is returned when a snapshot ID is already stored
var ErrAlreadyExists = interfaces.ErrAlreadyExists

type Memory struct {
	snapshot *snapshotRepository
	threat   *threatScenarioRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		snapshot: newSnapshotRepository(),
		threat:   newThreatScenarioRepository(),
	}
}

func (m *Memory) Snapshot() interfaces.SnapshotRepository {
	return m.snapshot
}

func (m *Memory) ThreatScenario() interfaces.ThreatScenarioRepository {
	return m.threat
}

func (m *Memory) Close() error {
	return nil
}
