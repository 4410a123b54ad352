package model

// ReleaseAsset is one downloadable file attached to a release.
type ReleaseAsset struct {
	Name string
	URL  string
}

// Release is the latest published release of a repository: tag plus assets
// in provider-returned order.
type Release struct {
	Tag    string
	Assets []ReleaseAsset
}

// ChangeDecision is the per-cycle comparison of a repository's current head
// commit and latest release against its stored VersionRecord. Ephemeral;
// discarded after the cycle. Commit and release are independent axes and may
// both be set in one cycle.
type ChangeDecision struct {
	CommitChanged  bool
	ReleaseChanged bool
	NewCommit      string
	NewRelease     string
	Assets         []ReleaseAsset
}
