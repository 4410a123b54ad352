package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// fetchChunkSize bounds the copy buffer so artifacts of arbitrary size never
// get buffered whole in memory.
const fetchChunkSize = 32 * 1024

// Fetcher streams remote artifact bodies to local files.
type Fetcher struct{}

// NewFetcher creates a new Fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch copies src to dest in bounded chunks, computing the sha256 digest
// while writing. On any failure the partially written destination file is
// removed; a partial artifact must never be exposed downstream.
func (f *Fetcher) Fetch(ctx context.Context, src io.Reader, dest string) (*model.Artifact, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact directory", goerr.V("dest", dest))
	}

	file, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact file", goerr.V("dest", dest))
	}

	hash := sha256.New()
	buf := make([]byte, fetchChunkSize)
	size, err := io.CopyBuffer(io.MultiWriter(file, hash), src, buf)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(dest)
		return nil, goerr.Wrap(err, "failed to stream artifact", goerr.V("dest", dest))
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(dest)
		return nil, goerr.Wrap(err, "failed to finalize artifact file", goerr.V("dest", dest))
	}

	artifact := &model.Artifact{
		Path:   dest,
		Name:   filepath.Base(dest),
		Size:   size,
		SHA256: hex.EncodeToString(hash.Sum(nil)),
	}

	logger.Debug("fetched artifact",
		"dest", dest,
		"size_bytes", artifact.Size,
		"sha256", artifact.SHA256,
	)

	return artifact, nil
}
