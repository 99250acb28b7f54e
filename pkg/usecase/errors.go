package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/quant"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrSessionNotFound  = goerr.New("comparison session not found")
	ErrBaselineNotFound = goerr.New("no baseline available for organization")
	ErrScenarioNotFound = quant.ErrScenarioNotFound

	// Conflict errors
	ErrDuplicateScenario = quant.ErrDuplicateScenario
)

// Context keys for error values
const (
	OrganizationIDKey   = "organization_id"
	SessionIDKey        = "session_id"
	ThreatScenarioIDKey = "threat_scenario_id"
	ScenarioIDKey       = quant.ScenarioIDKey
)
