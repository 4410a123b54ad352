package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/drover/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// record is the on-disk schema of one repository entry.
type record struct {
	LastCommit  string `toml:"last_commit"`
	LastRelease string `toml:"last_release"`
}

// Store persists the repository → version mapping as a TOML file, rewritten
// in full on every update. The format is deliberately human-diffable so
// operators can inspect and fix tracking state by hand.
type Store struct {
	path string

	mu      sync.Mutex
	records map[string]record
}

var _ interfaces.VersionStore = &Store{}

// New loads the version state from path. A missing file is a normal first
// run and yields an empty mapping. A file that exists but cannot be parsed,
// or whose keys are not "owner/repo", wraps types.ErrCorruptState: the
// caller must treat that as fatal rather than resetting the state.
func New(path string) (*Store, error) {
	s := &Store{
		path:    path,
		records: map[string]record{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, goerr.Wrap(err, "failed to read version state file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, &s.records); err != nil {
		return nil, goerr.Wrap(types.ErrCorruptState, err.Error(), goerr.V("path", path))
	}

	for key, rec := range s.records {
		if !strings.Contains(key, "/") {
			return nil, goerr.Wrap(types.ErrCorruptState, "state key is not owner/repo", goerr.V("path", path), goerr.V("key", key))
		}
		if rec.LastRelease == "" {
			rec.LastRelease = model.ReleaseNone
			s.records[key] = rec
		}
	}

	return s, nil
}

// Get returns the stored record for the repository, defaulting to a
// never-observed record.
func (s *Store) Get(repo model.Repository) model.VersionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[repo.String()]
	if !ok {
		return model.NewVersionRecord()
	}

	return model.VersionRecord{
		LastCommit:  rec.LastCommit,
		LastRelease: rec.LastRelease,
	}
}

// Update merges the record for one repository and rewrites the whole file.
// The write goes through a temp file and rename so a crash never leaves a
// partially written state file behind.
func (s *Store) Update(repo model.Repository, rec model.VersionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	release := rec.LastRelease
	if release == "" {
		release = model.ReleaseNone
	}
	s.records[repo.String()] = record{
		LastCommit:  rec.LastCommit,
		LastRelease: release,
	}

	return s.save()
}

func (s *Store) save() error {
	data, err := toml.Marshal(s.records)
	if err != nil {
		return goerr.Wrap(err, "failed to encode version state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return goerr.Wrap(err, "failed to create state directory", goerr.V("path", s.path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".versions-*.toml")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary state file", goerr.V("path", s.path))
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return goerr.Wrap(err, "failed to write temporary state file", goerr.V("path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return goerr.Wrap(err, "failed to close temporary state file", goerr.V("path", tmp.Name()))
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return goerr.Wrap(err, "failed to replace state file", goerr.V("path", s.path))
	}

	return nil
}
