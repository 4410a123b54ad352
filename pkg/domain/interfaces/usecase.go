package interfaces

import (
	"context"

	"github.com/m-mizutani/drover/pkg/domain/model"
)

// SyncUseCase defines the sync pipeline as consumed by the poll scheduler and
// the status endpoint.
type SyncUseCase interface {
	// SyncRepository runs change detection and artifact sync for one
	// repository. Returns whether any change was detected.
	SyncRepository(ctx context.Context, repo model.Repository) (bool, error)

	// SyncAll runs one poll cycle: re-reads the watch list and syncs each
	// repository sequentially. Per-repository failures are contained and
	// reported in the returned status; the error return covers only
	// cycle-level failures such as an unreadable watch list.
	SyncAll(ctx context.Context) (*model.PollStatus, error)

	// Status returns a snapshot of the most recent cycle.
	Status() model.PollStatus
}
