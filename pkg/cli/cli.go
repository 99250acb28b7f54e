package cli

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/utils/errutil"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const envFileEnv = "RISKQUANT_ENV_FILE"

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var envFile string
	var closers []func()

	// Flag values are resolved from the environment before Before runs, so
	// the dotenv file has to be loaded ahead of app.Run.
	if path := envFileFromArgs(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
		}
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "Load environment variables from a dotenv file",
			Sources:     cli.EnvVars(envFileEnv),
			Destination: &envFile,
		},
	}
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "riskquant",
		Usage:   "Risk quantification and maturity projection engine",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Info("Starting riskquant",
				"logger", loggerCfg,
				"sentry", sentryCfg,
				"env_file", envFile,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMigrate(),
			cmdFAIR(),
			cmdProject(),
			cmdCompare(),
			cmdSnapshot(),
			cmdThreat(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		errutil.Handle(ctx, err, "failed to run app")
		return err
	}

	return nil
}

// envFileFromArgs finds the dotenv path in the raw arguments or the
// environment
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return os.Getenv(envFileEnv)
		case arg == "--env-file" || arg == "-env-file":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file=")
		case strings.HasPrefix(arg, "-env-file="):
			return strings.TrimPrefix(arg, "-env-file=")
		}
	}
	return os.Getenv(envFileEnv)
}
