package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/cli/config"
	controller "github.com/m-mizutani/drover/pkg/controller/http"
	"github.com/m-mizutani/drover/pkg/controller/poll"
	"github.com/m-mizutani/drover/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var (
		githubCfg config.GitHub
		slackCfg  config.Slack
		watchCfg  config.Watch
		sentryCfg config.Sentry
	)

	flags := append(githubCfg.Flags(), slackCfg.Flags()...)
	flags = append(flags, watchCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Poll the watch list on an interval, forever",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting drover",
				slog.String("repo_list", watchCfg.RepoList),
				slog.String("base_dir", watchCfg.BaseDir),
				slog.String("state_file", watchCfg.StatePath()),
				slog.String("interval", watchCfg.Interval.String()),
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			if sentryCfg.Enabled() {
				defer sentry.Flush(2 * time.Second)
			}

			syncUC, err := buildSync(&githubCfg, &slackCfg, &watchCfg)
			if err != nil {
				return err
			}

			// Optional health/status server beside the poll loop
			if watchCfg.Addr != "" {
				server, err := controller.NewServer(ctx, syncUC, controller.WithAddr(watchCfg.Addr))
				if err != nil {
					return goerr.Wrap(err, "failed to create HTTP server")
				}

				async.Dispatch(ctx, func(ctx context.Context) error {
					ctxlog.From(ctx).Info("HTTP server starting", slog.String("addr", watchCfg.Addr))
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						return err
					}
					return nil
				})

				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					if err := server.Shutdown(shutdownCtx); err != nil {
						logger.Error("HTTP server shutdown failed", slog.Any("error", err))
					}
				}()
			}

			// Stop between cycles on SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			scheduler := poll.New(syncUC, watchCfg.Interval)
			if err := scheduler.Run(ctx); err != nil {
				return goerr.Wrap(err, "poller terminated")
			}

			logger.Info("Shutdown complete")
			return nil
		},
	}
}
