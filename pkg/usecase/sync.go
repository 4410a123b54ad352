package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/drover/pkg/infra/watchlist"
	"github.com/m-mizutani/goerr/v2"
)

// Sync drives the change-detection and idempotent-sync pipeline: detect
// changes, fetch artifacts, relay them, and commit the new version state
// only after successful relay.
type Sync struct {
	provider interfaces.SourceProvider
	notifier interfaces.Notifier
	store    interfaces.VersionStore
	detector *Detector
	fetcher  *Fetcher

	listPath string
	baseDir  string

	statusMu sync.Mutex
	status   model.PollStatus
}

var _ interfaces.SyncUseCase = &Sync{}

// NewSync creates a new Sync use case. listPath is the watch list file and
// baseDir the root of per-repository artifact storage.
func NewSync(
	provider interfaces.SourceProvider,
	notifier interfaces.Notifier,
	store interfaces.VersionStore,
	listPath, baseDir string,
) *Sync {
	return &Sync{
		provider: provider,
		notifier: notifier,
		store:    store,
		detector: NewDetector(provider),
		fetcher:  NewFetcher(),
		listPath: listPath,
		baseDir:  baseDir,
	}
}

// SyncAll runs one poll cycle. The watch list is re-read so edits take
// effect without a restart. Repositories are processed sequentially; a
// failure in one never skips the rest of the cycle.
func (uc *Sync) SyncAll(ctx context.Context) (*model.PollStatus, error) {
	status := model.PollStatus{
		CycleID:   uuid.NewString(),
		StartedAt: time.Now(),
		Errors:    map[string]string{},
	}

	logger := ctxlog.From(ctx).With("cycle_id", status.CycleID)
	ctx = ctxlog.With(ctx, logger)

	repos, err := watchlist.Load(ctx, uc.listPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load watch list", goerr.V("path", uc.listPath))
	}
	status.Repositories = len(repos)

	logger.Info("poll cycle started", "repositories", len(repos))

	for _, repo := range repos {
		changed, err := uc.SyncRepository(ctx, repo)
		if err != nil {
			logger.Error("repository sync failed",
				"repo", repo.String(),
				"error", err,
			)
			status.Failed++
			status.Errors[repo.String()] = err.Error()
		}
		if changed {
			status.Changed++
		}
	}

	status.FinishedAt = time.Now()

	uc.statusMu.Lock()
	uc.status = status
	uc.statusMu.Unlock()

	logger.Info("poll cycle finished",
		"repositories", status.Repositories,
		"changed", status.Changed,
		"failed", status.Failed,
		"duration_ms", status.FinishedAt.Sub(status.StartedAt).Milliseconds(),
	)

	return &status, nil
}

// Status returns a snapshot of the most recent cycle.
func (uc *Sync) Status() model.PollStatus {
	uc.statusMu.Lock()
	defer uc.statusMu.Unlock()
	return uc.status
}

// SyncRepository syncs one repository. The commit and release axes are
// independent: each advances in the persisted record only once its artifacts
// were relayed, so a failure on one axis never blocks or rolls back the
// other. Artifacts of a repository are processed strictly one at a time.
func (uc *Sync) SyncRepository(ctx context.Context, repo model.Repository) (bool, error) {
	logger := ctxlog.From(ctx)

	current := uc.store.Get(repo)

	decision, err := uc.detector.Detect(ctx, repo, current)
	if err != nil {
		// No state mutation: the repository is retried next cycle.
		return false, err
	}

	if !decision.CommitChanged && !decision.ReleaseChanged {
		logger.Debug("no change detected", "repo", repo.String())
		return false, nil
	}

	repoDir := filepath.Join(uc.baseDir, repo.DirName())
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		return false, goerr.Wrap(err, "failed to create repository directory", goerr.V("dir", repoDir))
	}

	var failures []error
	var relayed []*model.Artifact
	next := current

	if decision.CommitChanged {
		artifact, err := uc.syncSnapshot(ctx, repo, decision.NewCommit, repoDir)
		if err != nil {
			logger.Error("snapshot sync failed",
				"repo", repo.String(),
				"commit", decision.NewCommit,
				"error", err,
			)
			failures = append(failures, err)
		} else {
			next.LastCommit = decision.NewCommit
			relayed = append(relayed, artifact)
		}
	}

	if decision.ReleaseChanged {
		complete := true
		for _, asset := range decision.Assets {
			// Each asset's fetch+relay pair is its own unit: one failure
			// does not block the remaining assets.
			artifact, err := uc.syncAsset(ctx, repo, asset, repoDir)
			if err != nil {
				logger.Error("release asset sync failed",
					"repo", repo.String(),
					"release", decision.NewRelease,
					"asset", asset.Name,
					"error", err,
				)
				failures = append(failures, err)
				complete = false
				continue
			}
			relayed = append(relayed, artifact)
		}

		// last_release advances only once every asset of the tag has been
		// confirmed relayed; otherwise the tag still looks new next cycle
		// and the failed assets are retried.
		if complete {
			next.LastRelease = decision.NewRelease
		}
	}

	if len(relayed) > 0 {
		if err := uc.writeChecksums(repoDir, relayed); err != nil {
			logger.Warn("failed to write checksums", "repo", repo.String(), "error", err)
		}
		if err := uc.notifier.SendMessage(ctx, summaryText(repo, current, next)); err != nil {
			logger.Warn("failed to send summary message", "repo", repo.String(), "error", err)
		}
	}

	changed := next != current || len(relayed) > 0

	if next != current {
		if err := uc.store.Update(repo, next); err != nil {
			return changed, goerr.Wrap(err, "failed to persist version state", goerr.V("repo", repo.String()))
		}
		logger.Info("repository synced",
			"repo", repo.String(),
			"last_commit", next.LastCommit,
			"last_release", next.LastRelease,
		)
	}

	return changed, errors.Join(failures...)
}

// syncSnapshot fetches the whole-repository zip for the new commit and
// relays it. The local copy is removed after confirmed relay and retained on
// relay failure, so a transient notifier outage never loses the artifact.
func (uc *Sync) syncSnapshot(ctx context.Context, repo model.Repository, commit, repoDir string) (*model.Artifact, error) {
	src, err := uc.provider.OpenArchive(ctx, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open source archive")
	}
	defer src.Close()

	dest := filepath.Join(repoDir, fmt.Sprintf("source-%s.zip", shortCommit(commit)))
	artifact, err := uc.fetcher.Fetch(ctx, src, dest)
	if err != nil {
		return nil, err
	}

	if err := uc.relay(ctx, repo, artifact); err != nil {
		return nil, err
	}

	return artifact, nil
}

// syncAsset fetches one release asset and relays it, with the same local
// retention policy as syncSnapshot.
func (uc *Sync) syncAsset(ctx context.Context, repo model.Repository, asset model.ReleaseAsset, repoDir string) (*model.Artifact, error) {
	src, err := uc.provider.OpenAsset(ctx, asset.URL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open release asset", goerr.V("asset", asset.Name))
	}
	defer src.Close()

	artifact, err := uc.fetcher.Fetch(ctx, src, filepath.Join(repoDir, asset.Name))
	if err != nil {
		return nil, err
	}

	if err := uc.relay(ctx, repo, artifact); err != nil {
		return nil, err
	}

	return artifact, nil
}

func (uc *Sync) relay(ctx context.Context, repo model.Repository, artifact *model.Artifact) error {
	logger := ctxlog.From(ctx)

	caption := fmt.Sprintf("%s: %s (sha256 %s)", repo.String(), artifact.Name, artifact.SHA256)
	if err := uc.notifier.SendFile(ctx, artifact.Path, caption); err != nil {
		// Keep the local copy: the fetch succeeded and the relay is retried
		// next cycle without re-downloading being wasted on a flaky channel.
		return goerr.Wrap(err, "relay failed, artifact retained", goerr.V("path", artifact.Path))
	}

	if err := os.Remove(artifact.Path); err != nil {
		logger.Warn("failed to remove relayed artifact", "path", artifact.Path, "error", err)
	}

	return nil
}

// writeChecksums rewrites the per-repository checksum list from the
// artifacts relayed in this sync.
func (uc *Sync) writeChecksums(repoDir string, artifacts []*model.Artifact) error {
	var b strings.Builder
	for _, a := range artifacts {
		fmt.Fprintf(&b, "%s: %s\n", a.Name, a.SHA256)
	}

	path := filepath.Join(repoDir, "checksums.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return goerr.Wrap(err, "failed to write checksum file", goerr.V("path", path))
	}

	return nil
}

func summaryText(repo model.Repository, current, next model.VersionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository updated: %s\n", repo.String())
	if next.LastCommit != current.LastCommit {
		fmt.Fprintf(&b, "new commit: %s\n", shortCommit(next.LastCommit))
	}
	if next.LastRelease != current.LastRelease {
		fmt.Fprintf(&b, "new release: %s\n", next.LastRelease)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
