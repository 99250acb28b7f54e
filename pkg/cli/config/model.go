package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/riskquant/pkg/domain/model/config"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/urfave/cli/v3"
)

// Model holds CLI flags for the projection model constants
type Model struct {
	reductionRate float64
	breachBase    float64
	breachDecay   float64
	modelFile     string
}

// ModelFile is the TOML representation of the projection model. Keys that
// are absent leave the flag values in place.
type ModelFile struct {
	Projection struct {
		ReductionRatePerLevel *float64 `toml:"reduction_rate_per_level"`
		BreachCurve           *struct {
			BaseProbability float64 `toml:"base_probability"`
			DecayConstant   float64 `toml:"decay_constant"`
		} `toml:"breach_curve"`
	} `toml:"projection"`
}

// Flags returns CLI flags for model configuration
func (m *Model) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:        "reduction-rate",
			Usage:       "Fraction of remaining risk removed per maturity level",
			Value:       quant.DefaultReductionRatePerLevel,
			Category:    "Model",
			Sources:     cli.EnvVars("RISKQUANT_REDUCTION_RATE"),
			Destination: &m.reductionRate,
		},
		&cli.FloatFlag{
			Name:        "breach-base-probability",
			Usage:       "Base probability of the breach curve (0 disables breach probabilities)",
			Category:    "Model",
			Sources:     cli.EnvVars("RISKQUANT_BREACH_BASE_PROBABILITY"),
			Destination: &m.breachBase,
		},
		&cli.FloatFlag{
			Name:        "breach-decay",
			Usage:       "Decay constant k of the breach curve",
			Category:    "Model",
			Sources:     cli.EnvVars("RISKQUANT_BREACH_DECAY"),
			Destination: &m.breachDecay,
		},
		&cli.StringFlag{
			Name:        "model-file",
			Usage:       "TOML file with projection model settings",
			Category:    "Model",
			Sources:     cli.EnvVars("RISKQUANT_MODEL_FILE"),
			Destination: &m.modelFile,
		},
	}
}

// LogValue implements slog.LogValuer
func (m Model) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("reduction_rate", m.reductionRate),
		slog.Float64("breach_base_probability", m.breachBase),
		slog.Float64("breach_decay", m.breachDecay),
		slog.String("model_file", m.modelFile),
	)
}

// LoadModelFile reads projection settings from a TOML file
func LoadModelFile(path string) (*ModelFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read model file", goerr.V(ConfigPathKey, path))
	}

	var file ModelFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML model file", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}

// ProjectionConfig merges the flags with the optional model file
func (m *Model) ProjectionConfig() (*domainConfig.ProjectionConfig, error) {
	cfg := &domainConfig.ProjectionConfig{
		ReductionRatePerLevel: m.reductionRate,
	}
	if m.breachBase > 0 {
		cfg.BreachCurve = &domainConfig.BreachCurve{
			BaseProbability: m.breachBase,
			DecayConstant:   m.breachDecay,
		}
	}

	if m.modelFile != "" {
		file, err := LoadModelFile(m.modelFile)
		if err != nil {
			return nil, err
		}
		if file.Projection.ReductionRatePerLevel != nil {
			cfg.ReductionRatePerLevel = *file.Projection.ReductionRatePerLevel
		}
		if curve := file.Projection.BreachCurve; curve != nil {
			cfg.BreachCurve = &domainConfig.BreachCurve{
				BaseProbability: curve.BaseProbability,
				DecayConstant:   curve.DecayConstant,
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid projection model", goerr.V("cause", err.Error()))
	}
	return cfg, nil
}

// Configure builds the projection model
func (m *Model) Configure() (*quant.Model, error) {
	cfg, err := m.ProjectionConfig()
	if err != nil {
		return nil, err
	}

	model, err := quant.NewModel(*cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build projection model")
	}
	return model, nil
}
