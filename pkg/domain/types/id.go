package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ScenarioID identifies a what-if scenario within a comparison session
type ScenarioID string

// NewScenarioID generates a new UUID v4 based ScenarioID
func NewScenarioID() ScenarioID {
	return ScenarioID(uuid.New().String())
}

// Validate checks if the ScenarioID is valid
func (s ScenarioID) Validate() error {
	if s == "" {
		return goerr.New("scenario ID cannot be empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("scenario ID must be lowercase alphanumeric with hyphens", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of ScenarioID
func (s ScenarioID) String() string {
	return string(s)
}

// OrganizationID identifies the organization owning snapshots and threat scenarios
type OrganizationID string

// Validate checks if the OrganizationID is valid
func (o OrganizationID) Validate() error {
	if o == "" {
		return goerr.New("organization ID cannot be empty")
	}
	if !idPattern.MatchString(string(o)) {
		return goerr.New("organization ID must be lowercase alphanumeric with hyphens", goerr.V("id", o))
	}
	return nil
}

// String returns the string representation of OrganizationID
func (o OrganizationID) String() string {
	return string(o)
}

// ThreatScenarioID is a UUID-based identifier for ThreatScenario
type ThreatScenarioID string

// NewThreatScenarioID generates a new UUID v4 ThreatScenarioID
func NewThreatScenarioID() ThreatScenarioID {
	return ThreatScenarioID(uuid.New().String())
}

// String returns the string representation of ThreatScenarioID
func (t ThreatScenarioID) String() string {
	return string(t)
}

// SnapshotID is a UUID-based identifier for RiskSnapshot
type SnapshotID string

// NewSnapshotID generates a new UUID v4 SnapshotID
func NewSnapshotID() SnapshotID {
	return SnapshotID(uuid.New().String())
}

// String returns the string representation of SnapshotID
func (s SnapshotID) String() string {
	return string(s)
}

// SessionID is a UUID-based identifier for a comparison session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}
