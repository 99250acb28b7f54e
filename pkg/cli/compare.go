package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskquant/pkg/controller/http"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdCompare() *cli.Command {
	var scenarioFile string
	var output string
	var repoCfg config.Repository
	var modelCfg config.Model

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "scenario-file",
			Aliases:     []string{"f"},
			Usage:       "TOML file with the baseline and what-if scenarios",
			Required:    true,
			Sources:     cli.EnvVars("RISKQUANT_SCENARIO_FILE"),
			Destination: &scenarioFile,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the comparison as JSON to a local path or gs://bucket/object",
			Sources:     cli.EnvVars("RISKQUANT_OUTPUT"),
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, modelCfg.Flags()...)

	return &cli.Command{
		Name:    "compare",
		Aliases: []string{"c"},
		Usage:   "Compare what-if investment scenarios against a baseline",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			file, err := config.LoadScenarioFile(scenarioFile)
			if err != nil {
				return err
			}
			scenarios, err := file.ToScenarios()
			if err != nil {
				return goerr.Wrap(err, "failed to load scenarios", goerr.V(config.ConfigPathKey, scenarioFile))
			}

			projection, err := modelCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure projection model")
			}

			baseline, err := compareBaseline(ctx, file, &repoCfg, projection)
			if err != nil {
				return err
			}

			comparison, err := usecase.NewCalculatorUseCase(projection).Compare(ctx, *baseline, scenarios)
			if err != nil {
				return goerr.Wrap(err, "failed to compare scenarios")
			}

			renderComparison(os.Stdout, comparison)

			if output != "" {
				if err := writeJSON(ctx, output, httpctrl.NewComparisonResponse(comparison)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// compareBaseline uses the explicit baseline of the file, or resolves the
// organization's baseline from the configured repository
func compareBaseline(ctx context.Context, file *config.ScenarioFile, repoCfg *config.Repository, projection *quant.Model) (*model.Baseline, error) {
	if baseline := file.ToBaseline(); baseline != nil {
		return baseline, nil
	}

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}
	defer safe.Close(ctx, repo, "repository")

	uc := usecase.New(repo, usecase.WithModel(projection))
	resolved, err := uc.ResolveBaseline(ctx,
		types.OrganizationID(file.Organization.ID),
		types.MaturityLevel(file.Organization.FallbackMaturityLevel),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve baseline")
	}

	logging.Default().Info("Resolved baseline",
		"organization", file.Organization.ID,
		"source", resolved.Source,
		"risk_exposure", resolved.RiskExposure,
		"maturity_level", resolved.MaturityLevel,
	)
	return &resolved.Baseline, nil
}
