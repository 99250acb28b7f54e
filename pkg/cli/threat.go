package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdThreat() *cli.Command {
	return &cli.Command{
		Name:  "threat",
		Usage: "Manage FAIR threat scenarios",
		Commands: []*cli.Command{
			cmdThreatImport(),
			cmdThreatExposure(),
		},
	}
}

func cmdThreatImport() *cli.Command {
	var orgID string
	var threatFile string
	var repoCfg config.Repository

	flags := []cli.Flag{
		organizationFlag(&orgID),
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "TOML or YAML file with threat scenarios",
			Required:    true,
			Destination: &threatFile,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "import",
		Usage: "Import threat scenarios for an organization",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			file, err := config.LoadThreatFile(threatFile)
			if err != nil {
				return err
			}

			return withUseCases(ctx, &repoCfg, func(uc *usecase.UseCases) error {
				org := types.OrganizationID(orgID)
				imported, err := uc.Threat.Import(ctx, org, file.ToThreatScenarios())
				if err != nil {
					return goerr.Wrap(err, "failed to import threat scenarios")
				}
				logging.Default().Info("Imported threat scenarios", "organization", orgID, "count", len(imported))

				exposure, err := uc.Threat.OrganizationExposure(ctx, org)
				if err != nil {
					return goerr.Wrap(err, "failed to calculate exposure")
				}
				renderExposure(os.Stdout, exposure.Threats, exposure.Total)
				return nil
			})
		},
	}
}

func cmdThreatExposure() *cli.Command {
	var orgID string
	var repoCfg config.Repository

	flags := []cli.Flag{organizationFlag(&orgID)}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "exposure",
		Usage: "Show the annual loss exposure of an organization's threat scenarios",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return withUseCases(ctx, &repoCfg, func(uc *usecase.UseCases) error {
				exposure, err := uc.Threat.OrganizationExposure(ctx, types.OrganizationID(orgID))
				if err != nil {
					return goerr.Wrap(err, "failed to calculate exposure")
				}
				renderExposure(os.Stdout, exposure.Threats, exposure.Total)
				return nil
			})
		},
	}
}
