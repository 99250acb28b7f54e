package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// ThreatFile is a list of FAIR threat scenarios, written in TOML as
// [[threat]] tables or in YAML under a threats key
type ThreatFile struct {
	Threats []ThreatEntry `toml:"threat" yaml:"threats"`
}

// ThreatEntry represents one threat scenario
type ThreatEntry struct {
	Name                   string  `toml:"name" yaml:"name"`
	Description            string  `toml:"description" yaml:"description"`
	ThreatEventFrequency   float64 `toml:"threat_event_frequency" yaml:"threat_event_frequency"`
	VulnerabilityFactor    float64 `toml:"vulnerability_factor" yaml:"vulnerability_factor"`
	PrimaryLossMagnitude   float64 `toml:"primary_loss_magnitude" yaml:"primary_loss_magnitude"`
	SecondaryLossMagnitude float64 `toml:"secondary_loss_magnitude" yaml:"secondary_loss_magnitude"`
}

// LoadThreatFile loads threat scenarios from a TOML or YAML file, chosen
// by extension
func LoadThreatFile(path string) (*ThreatFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read threat file", goerr.V(ConfigPathKey, path))
	}

	var file ThreatFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse TOML threat file", goerr.V(ConfigPathKey, path))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse YAML threat file", goerr.V(ConfigPathKey, path))
		}
	default:
		return nil, goerr.Wrap(ErrUnsupportedFormat, "threat file must be TOML or YAML",
			goerr.V(ConfigPathKey, path),
			goerr.V(FormatKey, ext),
		)
	}

	for i, t := range file.Threats {
		if t.Name == "" {
			return nil, goerr.Wrap(ErrMissingName, "threat name is required",
				goerr.V(ConfigPathKey, path),
				goerr.V(IndexKey, i),
			)
		}
	}

	return &file, nil
}

// ToThreatScenarios converts the entries to domain threat scenarios. The
// organization is left empty for the caller to assign.
func (f *ThreatFile) ToThreatScenarios() []*model.ThreatScenario {
	threats := make([]*model.ThreatScenario, len(f.Threats))
	for i, t := range f.Threats {
		threats[i] = &model.ThreatScenario{
			Name:                   t.Name,
			Description:            t.Description,
			ThreatEventFrequency:   t.ThreatEventFrequency,
			VulnerabilityFactor:    t.VulnerabilityFactor,
			PrimaryLossMagnitude:   t.PrimaryLossMagnitude,
			SecondaryLossMagnitude: t.SecondaryLossMagnitude,
		}
	}
	return threats
}
