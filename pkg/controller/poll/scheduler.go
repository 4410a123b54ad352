package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/domain/interfaces"
)

// Scheduler runs the sync pipeline once per interval, forever. Failures of
// individual repositories or whole cycles never stop the loop; cancellation
// is consumed between cycles so the process can be drained without cutting
// an in-flight sync short.
type Scheduler struct {
	sync     interfaces.SyncUseCase
	interval time.Duration
}

// New creates a new Scheduler
func New(sync interfaces.SyncUseCase, interval time.Duration) *Scheduler {
	return &Scheduler{
		sync:     sync,
		interval: interval,
	}
}

// Run polls until ctx is cancelled. Always returns nil on cancellation; no
// cycle error is fatal once the process is up.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	logger.Info("poller started", "interval", s.interval.String())

	for {
		status, err := s.sync.SyncAll(ctx)
		if err != nil {
			logger.Error("poll cycle failed", "error", err)
			captureError(err)
		} else {
			for repo, msg := range status.Errors {
				captureMessage(fmt.Sprintf("repository sync failed: %s: %s", repo, msg))
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("poller stopping")
			return nil
		case <-time.After(s.interval):
		}
	}
}

func captureError(err error) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CaptureException(err)
}

func captureMessage(msg string) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CaptureMessage(msg)
}
