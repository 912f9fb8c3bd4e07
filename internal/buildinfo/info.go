// Package buildinfo holds version metadata stamped into the bozo binary.
package buildinfo

// Set with -ldflags "-X github.com/cleared-dev/bozo/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
