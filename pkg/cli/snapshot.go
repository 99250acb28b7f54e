package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func organizationFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "organization",
		Aliases:     []string{"org"},
		Usage:       "Organization ID",
		Required:    true,
		Sources:     cli.EnvVars("RISKQUANT_ORGANIZATION"),
		Destination: dst,
	}
}

func cmdSnapshot() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Record and inspect risk snapshots",
		Commands: []*cli.Command{
			cmdSnapshotRecord(),
			cmdSnapshotList(),
		},
	}
}

func cmdSnapshotRecord() *cli.Command {
	var orgID string
	var exposure float64
	var maturity float64
	var passRate float64
	var repoCfg config.Repository

	flags := []cli.Flag{
		organizationFlag(&orgID),
		&cli.FloatFlag{
			Name:        "risk-exposure",
			Usage:       "Total annual risk exposure",
			Required:    true,
			Destination: &exposure,
		},
		&cli.FloatFlag{
			Name:        "maturity",
			Usage:       "Maturity level (1-5)",
			Required:    true,
			Destination: &maturity,
		},
		&cli.FloatFlag{
			Name:        "control-pass-rate",
			Usage:       "Percentage of passing controls (0-100)",
			Destination: &passRate,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "record",
		Usage: "Append a risk snapshot for an organization",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return withUseCases(ctx, &repoCfg, func(uc *usecase.UseCases) error {
				snapshot, err := uc.Snapshot.Record(ctx, &model.RiskSnapshot{
					OrganizationID:    types.OrganizationID(orgID),
					TotalRiskExposure: exposure,
					MaturityLevel:     types.MaturityLevel(maturity),
					ControlPassRate:   passRate,
				})
				if err != nil {
					return goerr.Wrap(err, "failed to record snapshot")
				}

				renderSnapshots(os.Stdout, []*model.RiskSnapshot{snapshot})
				return nil
			})
		},
	}
}

func cmdSnapshotList() *cli.Command {
	var orgID string
	var latest bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		organizationFlag(&orgID),
		&cli.BoolFlag{
			Name:        "latest",
			Usage:       "Show only the most recent snapshot",
			Destination: &latest,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List risk snapshots of an organization in chronological order",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return withUseCases(ctx, &repoCfg, func(uc *usecase.UseCases) error {
				if latest {
					snapshot, err := uc.Snapshot.Latest(ctx, types.OrganizationID(orgID))
					if err != nil {
						return goerr.Wrap(err, "failed to get latest snapshot")
					}
					renderSnapshots(os.Stdout, []*model.RiskSnapshot{snapshot})
					return nil
				}

				snapshots, err := uc.Snapshot.List(ctx, types.OrganizationID(orgID))
				if err != nil {
					return goerr.Wrap(err, "failed to list snapshots")
				}
				renderSnapshots(os.Stdout, snapshots)
				return nil
			})
		},
	}
}

func renderSnapshots(w io.Writer, snapshots []*model.RiskSnapshot) {
	fmt.Fprintln(w, headerColor.Sprintf("%-36s  %-20s  %16s  %8s  %10s", "ID", "TIMESTAMP", "RISK EXPOSURE", "MATURITY", "PASS RATE"))
	for _, s := range snapshots {
		fmt.Fprintf(w, "%-36s  %-20s  %16s  %8s  %10s\n",
			s.ID,
			s.Timestamp.UTC().Format(time.RFC3339),
			formatAmount(s.TotalRiskExposure),
			formatLevel(float64(s.MaturityLevel)),
			formatPercent(s.ControlPassRate),
		)
	}
}
