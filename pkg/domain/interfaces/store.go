package interfaces

import "github.com/m-mizutani/drover/pkg/domain/model"

// VersionStore owns the durable mapping from repository identity to the last
// fully synced commit and release. Implementations load the full state at
// construction and fail there on malformed content.
type VersionStore interface {
	// Get returns the stored record for the repository, defaulting to a
	// never-observed record for unseen repositories.
	Get(repo model.Repository) model.VersionRecord

	// Update merges the record for one repository and persists the whole
	// mapping immediately. A crash mid-cycle loses at most the in-progress
	// repository's update.
	Update(repo model.Repository, rec model.VersionRecord) error
}
