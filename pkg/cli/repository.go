package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
)

// withUseCases opens the configured repository for the duration of fn
func withUseCases(ctx context.Context, repoCfg *config.Repository, fn func(uc *usecase.UseCases) error) error {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to initialize repository")
	}
	defer safe.Close(ctx, repo, "repository")

	if repoCfg.Backend() == "memory" || repoCfg.Backend() == "" {
		logging.Default().Warn("In-memory repository is discarded when the command exits")
	}

	return fn(usecase.New(repo))
}
