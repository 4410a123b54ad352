package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/cli/config"
	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/drover/pkg/infra/github"
	slackinfra "github.com/m-mizutani/drover/pkg/infra/slack"
	"github.com/m-mizutani/drover/pkg/infra/store"
	"github.com/m-mizutani/drover/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var (
		githubCfg config.GitHub
		slackCfg  config.Slack
		watchCfg  config.Watch
	)

	flags := append(githubCfg.Flags(), slackCfg.Flags()...)
	flags = append(flags, watchCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Run a single poll cycle and exit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			syncUC, err := buildSync(&githubCfg, &slackCfg, &watchCfg)
			if err != nil {
				return err
			}

			status, err := syncUC.SyncAll(ctx)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("sync finished",
				slog.Int("repositories", status.Repositories),
				slog.Int("changed", status.Changed),
				slog.Int("failed", status.Failed),
			)

			return nil
		},
	}
}

// buildSync wires the sync pipeline from configuration. A corrupt version
// state file fails here, before any polling starts.
func buildSync(githubCfg *config.GitHub, slackCfg *config.Slack, watchCfg *config.Watch) (interfaces.SyncUseCase, error) {
	versionStore, err := store.New(watchCfg.StatePath())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load version state")
	}

	provider := githubinfra.New(githubCfg.Token)
	notifier := slackinfra.New(slackCfg.Token, slackCfg.Channel)

	return usecase.NewSync(provider, notifier, versionStore, watchCfg.RepoList, watchCfg.BaseDir), nil
}
