package quant

import "github.com/m-mizutani/goerr/v2"

var (
	ErrDuplicateScenario = goerr.New("duplicate scenario ID")
	ErrScenarioNotFound  = goerr.New("scenario not found")
)

// ScenarioIDKey is the goerr value key for scenario IDs
const ScenarioIDKey = "scenario_id"
