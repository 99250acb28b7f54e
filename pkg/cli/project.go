package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdProject() *cli.Command {
	var currentRisk float64
	var currentMaturity float64
	var targetMaturity float64
	var investment float64
	var timeframe float64
	var modelCfg config.Model

	flags := []cli.Flag{
		&cli.FloatFlag{
			Name:        "current-risk",
			Usage:       "Current annual risk exposure",
			Required:    true,
			Destination: &currentRisk,
		},
		&cli.FloatFlag{
			Name:        "current-maturity",
			Usage:       "Current maturity level (1-5)",
			Required:    true,
			Destination: &currentMaturity,
		},
		&cli.FloatFlag{
			Name:        "target-maturity",
			Usage:       "Target maturity level (1-5)",
			Required:    true,
			Destination: &targetMaturity,
		},
		&cli.FloatFlag{
			Name:        "investment",
			Usage:       "Investment amount; enables decision metrics",
			Destination: &investment,
		},
		&cli.FloatFlag{
			Name:        "timeframe",
			Usage:       "Timeframe in months for the break-even test",
			Value:       12,
			Destination: &timeframe,
		},
	}
	flags = append(flags, modelCfg.Flags()...)

	return &cli.Command{
		Name:  "project",
		Usage: "Project risk exposure at a target maturity level",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			projection, err := modelCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure projection model")
			}
			calc := usecase.NewCalculatorUseCase(projection)

			baseline := model.Baseline{
				RiskExposure:  currentRisk,
				MaturityLevel: types.MaturityLevel(currentMaturity),
			}
			result, err := calc.Project(ctx, baseline, types.MaturityLevel(targetMaturity))
			if err != nil {
				return goerr.Wrap(err, "failed to project risk")
			}

			var metrics *model.DecisionMetrics
			if c.IsSet("investment") {
				metrics, err = calc.Decide(ctx, result.ProjectedRiskReduction, investment, timeframe)
				if err != nil {
					return goerr.Wrap(err, "failed to evaluate investment")
				}
			}

			renderProjection(os.Stdout, result, metrics)
			return nil
		},
	}
}
