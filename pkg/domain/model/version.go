package model

// ReleaseNone marks a repository that has been observed but publishes no
// releases. It is distinct from the zero value of an unseen repository only
// in intent; both compare unequal to any real tag.
const ReleaseNone = "none"

// VersionRecord is the persisted per-repository state: the last commit hash
// and release tag that were fully synced. A record is written only after the
// corresponding artifacts were durably fetched and relayed, never before.
type VersionRecord struct {
	LastCommit  string
	LastRelease string
}

// NewVersionRecord returns the default record for a never-observed repository.
func NewVersionRecord() VersionRecord {
	return VersionRecord{LastRelease: ReleaseNone}
}
