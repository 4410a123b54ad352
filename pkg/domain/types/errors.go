package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrCorruptState indicates the persisted version state file exists but
	// cannot be parsed or violates the schema. This is fatal at startup:
	// silently resetting the state would make every watched repository look
	// changed and trigger a mass re-download/re-notify storm.
	ErrCorruptState = goerr.New("version state file is corrupt")

	// ErrInvalidRepository indicates a repository URL/identifier that does not
	// resolve to an owner and name.
	ErrInvalidRepository = goerr.New("invalid repository identifier")
)
