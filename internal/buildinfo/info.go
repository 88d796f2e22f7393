// Package buildinfo carries release metadata stamped in by the linker.
package buildinfo

// Set with -ldflags "-X github.com/upreport/upreport/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
