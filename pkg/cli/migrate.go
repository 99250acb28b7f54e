package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/repository/firestore"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// defaultDatabaseID is the Firestore database used when none is given
const defaultDatabaseID = "(default)"

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var collectionPrefix string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("RISKQUANT_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("RISKQUANT_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.StringFlag{
				Name:        "firestore-collection-prefix",
				Usage:       "Prefix for Firestore collection names",
				Sources:     cli.EnvVars("RISKQUANT_FIRESTORE_COLLECTION_PREFIX"),
				Destination: &collectionPrefix,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"collectionPrefix", collectionPrefix,
				"dryRun", dryRun)

			if databaseID == "" {
				databaseID = defaultDatabaseID
			}
			indexConfig := getIndexConfig(collectionPrefix)

			client, err := fireconf.New(ctx, projectID, databaseID, indexConfig,
				fireconf.WithLogger(logger),
				fireconf.WithDryRun(dryRun),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer safe.Close(ctx, client, "fireconf client")

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				names := make([]string, len(indexConfig.Collections))
				for i, col := range indexConfig.Collections {
					names[i] = col.Name
				}

				current, err := client.Import(ctx, names...)
				if err != nil {
					return goerr.Wrap(err, "failed to import current indexes")
				}
				diff, err := client.DiffConfigs(current)
				if err != nil {
					return goerr.Wrap(err, "failed to diff indexes")
				}

				if len(diff.Collections) == 0 {
					logger.Info("No changes required")
					return nil
				}
				for _, col := range diff.Collections {
					logger.Info("Migration step",
						"collection", col.Name,
						"action", col.Action,
						"indexesToAdd", len(col.IndexesToAdd),
						"indexesToDelete", len(col.IndexesToDelete))
				}
				return nil
			}

			logger.Info("Applying migrations")
			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			logger.Info("Migrations applied successfully")
			return nil
		},
	}
}

// getIndexConfig returns the composite indexes the snapshot history
// queries need
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.CollectionName(prefix, firestore.SnapshotsCollection),
				Indexes: []fireconf.Index{
					// List: organization_id ASC, timestamp ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "organization_id", Order: fireconf.OrderAscending},
							{Path: "timestamp", Order: fireconf.OrderAscending},
						},
					},
					// Latest: organization_id ASC, timestamp DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "organization_id", Order: fireconf.OrderAscending},
							{Path: "timestamp", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
