package config

import (
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
)

// Watch holds poller configuration
type Watch struct {
	Interval  time.Duration
	RepoList  string
	BaseDir   string
	StateFile string
	Addr      string
}

// Flags returns CLI flags for poller configuration
func (c *Watch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Poll interval between cycles",
			Value:       10 * time.Minute,
			Destination: &c.Interval,
			Sources:     cli.EnvVars("DROVER_INTERVAL"),
		},
		&cli.StringFlag{
			Name:        "repo-list",
			Usage:       "File with one repository URL per line, re-read each cycle",
			Value:       "repos.txt",
			Destination: &c.RepoList,
			Sources:     cli.EnvVars("DROVER_REPO_LIST"),
		},
		&cli.StringFlag{
			Name:        "base-dir",
			Usage:       "Base directory for downloaded artifacts",
			Value:       "drover_repos",
			Destination: &c.BaseDir,
			Sources:     cli.EnvVars("DROVER_BASE_DIR"),
		},
		&cli.StringFlag{
			Name:        "state-file",
			Usage:       "Version state file (default: <base-dir>/versions.toml)",
			Destination: &c.StateFile,
			Sources:     cli.EnvVars("DROVER_STATE_FILE"),
		},
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Address of the health/status HTTP server (disabled when empty)",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("DROVER_ADDR"),
		},
	}
}

// StatePath returns the configured state file, defaulting to
// versions.toml under the base directory.
func (c *Watch) StatePath() string {
	if c.StateFile != "" {
		return c.StateFile
	}
	return filepath.Join(c.BaseDir, "versions.toml")
}
