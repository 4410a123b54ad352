package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/m-mizutani/drover/pkg/domain/model"
)

// mockProvider is a func-field test double for interfaces.SourceProvider
type mockProvider struct {
	latestCommitFunc  func(ctx context.Context, repo model.Repository) (string, error)
	latestReleaseFunc func(ctx context.Context, repo model.Repository) (*model.Release, error)
	openArchiveFunc   func(ctx context.Context, repo model.Repository) (io.ReadCloser, error)
	openAssetFunc     func(ctx context.Context, url string) (io.ReadCloser, error)
}

func (m *mockProvider) LatestCommit(ctx context.Context, repo model.Repository) (string, error) {
	if m.latestCommitFunc != nil {
		return m.latestCommitFunc(ctx, repo)
	}
	return "", errors.New("latestCommitFunc not configured")
}

func (m *mockProvider) LatestRelease(ctx context.Context, repo model.Repository) (*model.Release, error) {
	if m.latestReleaseFunc != nil {
		return m.latestReleaseFunc(ctx, repo)
	}
	return nil, nil
}

func (m *mockProvider) OpenArchive(ctx context.Context, repo model.Repository) (io.ReadCloser, error) {
	if m.openArchiveFunc != nil {
		return m.openArchiveFunc(ctx, repo)
	}
	return nil, errors.New("openArchiveFunc not configured")
}

func (m *mockProvider) OpenAsset(ctx context.Context, url string) (io.ReadCloser, error) {
	if m.openAssetFunc != nil {
		return m.openAssetFunc(ctx, url)
	}
	return nil, errors.New("openAssetFunc not configured")
}

// mockNotifier records relayed files and messages
type mockNotifier struct {
	mu           sync.Mutex
	sendFileFunc func(ctx context.Context, path, caption string) error

	files    []string // captions of relayed files
	messages []string
}

func (m *mockNotifier) SendFile(ctx context.Context, path, caption string) error {
	if m.sendFileFunc != nil {
		if err := m.sendFileFunc(ctx, path, caption); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, caption)
	return nil
}

func (m *mockNotifier) SendMessage(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, text)
	return nil
}

func (m *mockNotifier) fileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
