package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/drover/pkg/usecase"
)

func TestDetector_NoChange(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "c1", nil
		},
		latestReleaseFunc: func(ctx context.Context, repo model.Repository) (*model.Release, error) {
			return &model.Release{Tag: "v1"}, nil
		},
	}

	detector := usecase.NewDetector(provider)
	decision, err := detector.Detect(ctx, repo, model.VersionRecord{LastCommit: "c1", LastRelease: "v1"})
	gt.NoError(t, err)
	gt.Value(t, decision.CommitChanged).Equal(false)
	gt.Value(t, decision.ReleaseChanged).Equal(false)
}

func TestDetector_CommitChanged(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "c2", nil
		},
	}

	detector := usecase.NewDetector(provider)
	decision, err := detector.Detect(ctx, repo, model.VersionRecord{LastCommit: "c1", LastRelease: model.ReleaseNone})
	gt.NoError(t, err)
	gt.Value(t, decision.CommitChanged).Equal(true)
	gt.Value(t, decision.NewCommit).Equal("c2")
	gt.Value(t, decision.ReleaseChanged).Equal(false)
}

func TestDetector_ReleaseChanged(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "c1", nil
		},
		latestReleaseFunc: func(ctx context.Context, repo model.Repository) (*model.Release, error) {
			return &model.Release{
				Tag: "v2",
				Assets: []model.ReleaseAsset{
					{Name: "tool.tar.gz", URL: "https://example.com/tool.tar.gz"},
				},
			}, nil
		},
	}

	detector := usecase.NewDetector(provider)
	decision, err := detector.Detect(ctx, repo, model.VersionRecord{LastCommit: "c1", LastRelease: "v1"})
	gt.NoError(t, err)
	gt.Value(t, decision.CommitChanged).Equal(false)
	gt.Value(t, decision.ReleaseChanged).Equal(true)
	gt.Value(t, decision.NewRelease).Equal("v2")
	gt.Value(t, len(decision.Assets)).Equal(1)
}

func TestDetector_BothChanged(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "c2", nil
		},
		latestReleaseFunc: func(ctx context.Context, repo model.Repository) (*model.Release, error) {
			return &model.Release{Tag: "v2"}, nil
		},
	}

	detector := usecase.NewDetector(provider)
	decision, err := detector.Detect(ctx, repo, model.VersionRecord{LastCommit: "c1", LastRelease: "v1"})
	gt.NoError(t, err)
	gt.Value(t, decision.CommitChanged).Equal(true)
	gt.Value(t, decision.ReleaseChanged).Equal(true)
}

func TestDetector_NoReleaseIsNeverAChange(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "c1", nil
		},
		latestReleaseFunc: func(ctx context.Context, repo model.Repository) (*model.Release, error) {
			return nil, nil
		},
	}

	detector := usecase.NewDetector(provider)
	decision, err := detector.Detect(ctx, repo, model.VersionRecord{LastCommit: "c1", LastRelease: model.ReleaseNone})
	gt.NoError(t, err)
	gt.Value(t, decision.ReleaseChanged).Equal(false)
}

func TestDetector_CommitQueryFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "", errors.New("rate limited")
		},
	}

	detector := usecase.NewDetector(provider)
	_, err := detector.Detect(ctx, repo, model.VersionRecord{LastRelease: model.ReleaseNone})
	gt.Error(t, err)
}

func TestDetector_ReleaseQueryFailureOnlySuppressesReleaseAxis(t *testing.T) {
	ctx := context.Background()
	repo := model.Repository{Owner: "foo", Name: "bar"}

	provider := &mockProvider{
		latestCommitFunc: func(ctx context.Context, repo model.Repository) (string, error) {
			return "c2", nil
		},
		latestReleaseFunc: func(ctx context.Context, repo model.Repository) (*model.Release, error) {
			return nil, errors.New("server error")
		},
	}

	detector := usecase.NewDetector(provider)
	decision, err := detector.Detect(ctx, repo, model.VersionRecord{LastCommit: "c1", LastRelease: "v1"})
	gt.NoError(t, err)
	gt.Value(t, decision.CommitChanged).Equal(true)
	gt.Value(t, decision.ReleaseChanged).Equal(false)
	gt.Value(t, decision.NewRelease).Equal("v1")
}
