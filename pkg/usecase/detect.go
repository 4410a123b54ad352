package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Detector compares a repository's current head commit and latest release
// against its stored version record.
type Detector struct {
	provider interfaces.SourceProvider
}

// NewDetector creates a new Detector
func NewDetector(provider interfaces.SourceProvider) *Detector {
	return &Detector{provider: provider}
}

// Detect queries the provider and produces the change decision for one
// repository.
//
// A failed head-commit query aborts the whole repository for this cycle: the
// absence of an answer is never treated as a change. A failed latest-release
// query only suppresses the release axis; the commit axis still proceeds and
// the release comparison is retried next cycle.
func (d *Detector) Detect(ctx context.Context, repo model.Repository, current model.VersionRecord) (*model.ChangeDecision, error) {
	logger := ctxlog.From(ctx)

	commit, err := d.provider.LatestCommit(ctx, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "head commit query failed", goerr.V("repo", repo.String()))
	}

	decision := &model.ChangeDecision{
		CommitChanged: commit != "" && commit != current.LastCommit,
		NewCommit:     commit,
		NewRelease:    current.LastRelease,
	}

	release, err := d.provider.LatestRelease(ctx, repo)
	if err != nil {
		logger.Warn("latest release query failed, retrying next cycle",
			"repo", repo.String(),
			"error", err,
		)
	} else if release != nil && release.Tag != model.ReleaseNone && release.Tag != current.LastRelease {
		decision.ReleaseChanged = true
		decision.NewRelease = release.Tag
		decision.Assets = release.Assets
	}

	return decision, nil
}
