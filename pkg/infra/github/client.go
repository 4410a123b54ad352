package github

import (
	"context"
	"io"
	"net/http"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	githubClient *github.Client
	httpClient   *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the API base URL. Used by tests to point the client
// at a local double.
func WithBaseURL(rawURL string) Option {
	return func(c *client) {
		u, err := c.githubClient.BaseURL.Parse(rawURL)
		if err == nil {
			c.githubClient.BaseURL = u
		}
	}
}

// New creates a SourceProvider backed by the GitHub REST API. The token is
// optional; it raises rate limits but is not required for public
// repositories.
func New(token string, opts ...Option) interfaces.SourceProvider {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}

	c := &client{
		githubClient: gh,
		httpClient:   &http.Client{Transport: gh.Client().Transport},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LatestCommit returns the head commit hash of the default branch.
func (c *client) LatestCommit(ctx context.Context, repo model.Repository) (string, error) {
	commit, _, err := c.githubClient.Repositories.GetCommit(ctx, repo.Owner, repo.Name, model.DefaultBranch, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to query head commit", goerr.V("repo", repo.String()))
	}
	if commit.GetSHA() == "" {
		return "", goerr.New("head commit response has no SHA", goerr.V("repo", repo.String()))
	}

	return commit.GetSHA(), nil
}

// LatestRelease returns the latest published release, or (nil, nil) when the
// repository has no releases.
func (c *client) LatestRelease(ctx context.Context, repo model.Repository) (*model.Release, error) {
	release, resp, err := c.githubClient.Repositories.GetLatestRelease(ctx, repo.Owner, repo.Name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to query latest release", goerr.V("repo", repo.String()))
	}

	result := &model.Release{
		Tag: release.GetTagName(),
	}
	for _, asset := range release.Assets {
		result.Assets = append(result.Assets, model.ReleaseAsset{
			Name: asset.GetName(),
			URL:  asset.GetBrowserDownloadURL(),
		})
	}

	return result, nil
}

// OpenArchive opens a stream of the zip snapshot of the default branch.
func (c *client) OpenArchive(ctx context.Context, repo model.Repository) (io.ReadCloser, error) {
	url, _, err := c.githubClient.Repositories.GetArchiveLink(ctx, repo.Owner, repo.Name, github.Zipball, &github.RepositoryContentGetOptions{
		Ref: model.DefaultBranch,
	}, 3)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get archive download URL", goerr.V("repo", repo.String()))
	}

	return c.openStream(ctx, url.String())
}

// OpenAsset opens a stream of a release asset by its download URL.
func (c *client) OpenAsset(ctx context.Context, url string) (io.ReadCloser, error) {
	return c.openStream(ctx, url)
}

func (c *client) openStream(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start download", goerr.V("url", url))
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, goerr.New("unexpected status code on download", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	return resp.Body, nil
}
