package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrUnsupportedFormat  = goerr.New("unsupported file format")
	ErrMissingName        = goerr.New("name is required")
	ErrDuplicateScenario  = goerr.New("duplicate scenario ID")
	ErrMissingBaseline    = goerr.New("baseline or organization is required")
	ErrInvalidBackend     = goerr.New("invalid repository backend")
	ErrMissingFirestoreID = goerr.New("firestore-project-id is required when using firestore backend")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	IndexKey      = "index"
	ScenarioIDKey = "scenario_id"
	BackendKey    = "backend"
	FormatKey     = "format"
)
