package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/drover/pkg/domain/model"
)

// SourceProvider defines the read operations against a hosted source-control
// API that the sync pipeline consumes.
type SourceProvider interface {
	// LatestCommit returns the head commit hash of the default branch.
	LatestCommit(ctx context.Context, repo model.Repository) (string, error)

	// LatestRelease returns the latest published release with its assets in
	// provider order. Returns (nil, nil) when the repository has no releases.
	LatestRelease(ctx context.Context, repo model.Repository) (*model.Release, error)

	// OpenArchive opens a stream of the whole-repository source snapshot
	// (zip of the default branch). The caller must close the stream.
	OpenArchive(ctx context.Context, repo model.Repository) (io.ReadCloser, error)

	// OpenAsset opens a stream of a release asset by its download URL.
	// The caller must close the stream.
	OpenAsset(ctx context.Context, url string) (io.ReadCloser, error)
}
