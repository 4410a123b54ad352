package model

import (
	"strings"

	"github.com/m-mizutani/drover/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultBranch is the branch polled for the head commit and source snapshot.
const DefaultBranch = "main"

// Repository identifies a watched repository by owner and name. Immutable
// once parsed; used as the join key across version state and storage layout.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository resolves a repository identifier into owner and name.
// Accepts full https URLs ("https://github.com/owner/repo", trailing slash
// tolerated) and the short "owner/repo" form.
func ParseRepository(raw string) (Repository, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return Repository{}, goerr.Wrap(types.ErrInvalidRepository, "missing owner or name", goerr.V("input", raw))
	}

	repo := Repository{
		Owner: parts[len(parts)-2],
		Name:  parts[len(parts)-1],
	}
	if repo.Owner == "" || repo.Name == "" {
		return Repository{}, goerr.Wrap(types.ErrInvalidRepository, "empty owner or name", goerr.V("input", raw))
	}

	return repo, nil
}

// String returns the "owner/name" form used as the version state key.
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// DirName returns the storage directory name for the repository.
func (r Repository) DirName() string {
	return r.Owner + "_" + r.Name
}
