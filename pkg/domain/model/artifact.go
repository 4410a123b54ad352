package model

// Artifact is a downloaded unit: either a whole-repository source snapshot or
// one release asset, materialized on local disk. Local copies are transient;
// they are removed once relay succeeds and retained only on relay failure.
type Artifact struct {
	Path   string // local file path
	Name   string // file basename
	Size   int64  // bytes written
	SHA256 string // hex digest computed while streaming
}
