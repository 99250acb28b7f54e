package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFAIR() *cli.Command {
	var input usecase.FAIRInput
	var controlEffectiveness float64
	var threatCapability float64
	var threatFile string

	return &cli.Command{
		Name:  "fair",
		Usage: "Calculate loss event frequency and annual loss exposure",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:        "tef",
				Usage:       "Threat event frequency (attempts per year)",
				Category:    "FAIR",
				Destination: &input.ThreatEventFrequency,
			},
			&cli.FloatFlag{
				Name:        "vulnerability",
				Usage:       "Probability that an attempt succeeds (0-1)",
				Category:    "FAIR",
				Destination: &input.VulnerabilityFactor,
			},
			&cli.FloatFlag{
				Name:        "control-effectiveness",
				Usage:       "Control effectiveness (0-1); derives vulnerability with --threat-capability",
				Category:    "FAIR",
				Destination: &controlEffectiveness,
			},
			&cli.FloatFlag{
				Name:        "threat-capability",
				Usage:       "Threat capability (0-1); derives vulnerability with --control-effectiveness",
				Category:    "FAIR",
				Destination: &threatCapability,
			},
			&cli.FloatFlag{
				Name:        "primary-loss",
				Usage:       "Primary loss magnitude per event",
				Category:    "FAIR",
				Destination: &input.PrimaryLossMagnitude,
			},
			&cli.FloatFlag{
				Name:        "secondary-loss",
				Usage:       "Secondary loss magnitude per event",
				Category:    "FAIR",
				Destination: &input.SecondaryLossMagnitude,
			},
			&cli.StringFlag{
				Name:        "threat-file",
				Aliases:     []string{"f"},
				Usage:       "TOML or YAML file with threat scenarios; overrides the single-threat flags",
				Destination: &threatFile,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			calc := usecase.NewCalculatorUseCase(quant.DefaultModel())

			if threatFile != "" {
				file, err := config.LoadThreatFile(threatFile)
				if err != nil {
					return err
				}
				exposures, total, err := evaluateThreatFile(ctx, calc, file)
				if err != nil {
					return err
				}
				renderExposure(os.Stdout, exposures, total)
				return nil
			}

			if c.IsSet("control-effectiveness") || c.IsSet("threat-capability") {
				if c.IsSet("vulnerability") {
					return goerr.Wrap(model.ErrValidation, "--vulnerability cannot be combined with --control-effectiveness or --threat-capability")
				}
				v, err := calc.Vulnerability(ctx, controlEffectiveness, threatCapability)
				if err != nil {
					return goerr.Wrap(err, "failed to derive vulnerability")
				}
				input.VulnerabilityFactor = v
			}

			exposure, err := calc.LossExposure(ctx, input)
			if err != nil {
				return goerr.Wrap(err, "failed to calculate loss exposure")
			}

			renderKeyValues(os.Stdout, [][2]string{
				{"Vulnerability", fixed(input.VulnerabilityFactor, 4)},
				{"Loss event frequency", fixed(exposure.LossEventFrequency, 4)},
				{"Annual loss exposure", formatAmount(exposure.AnnualLossExposure)},
			})
			return nil
		},
	}
}

// evaluateThreatFile computes the exposure of every threat in a file. The
// file carries no organization, so entries go through the raw FAIR chain.
func evaluateThreatFile(ctx context.Context, calc *usecase.CalculatorUseCase, file *config.ThreatFile) ([]*model.LossExposure, float64, error) {
	exposures := make([]*model.LossExposure, 0, len(file.Threats))
	var total float64
	for i, t := range file.Threats {
		exposure, err := calc.LossExposure(ctx, usecase.FAIRInput{
			ThreatEventFrequency:   t.ThreatEventFrequency,
			VulnerabilityFactor:    t.VulnerabilityFactor,
			PrimaryLossMagnitude:   t.PrimaryLossMagnitude,
			SecondaryLossMagnitude: t.SecondaryLossMagnitude,
		})
		if err != nil {
			return nil, 0, goerr.Wrap(err, "invalid threat", goerr.V("index", i), goerr.V("name", t.Name))
		}
		exposure.Name = t.Name
		total += exposure.AnnualLossExposure
		exposures = append(exposures, exposure)
	}
	return exposures, total, nil
}
