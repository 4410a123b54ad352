package watchlist

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Load reads the watch list: one repository URL or "owner/repo" per line,
// blank lines and "#" comments skipped. The file is re-read every cycle so
// the list can be edited without restarting the process.
//
// A missing file is not an error: an empty file is created and the cycle
// proceeds with zero repositories (fail open to idle). Lines that do not
// parse are logged and skipped so one typo cannot stall the rest of the
// list.
func Load(ctx context.Context, path string) ([]model.Repository, error) {
	logger := ctxlog.From(ctx)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("watch list not found, creating empty file", "path", path)
			if err := os.WriteFile(path, nil, 0644); err != nil {
				return nil, goerr.Wrap(err, "failed to create empty watch list", goerr.V("path", path))
			}
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to open watch list", goerr.V("path", path))
	}
	defer f.Close()

	var repos []model.Repository
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		repo, err := model.ParseRepository(line)
		if err != nil {
			logger.Warn("skipping invalid watch list entry", "line", line, "error", err)
			continue
		}
		repos = append(repos, repo)
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read watch list", goerr.V("path", path))
	}

	return repos, nil
}
