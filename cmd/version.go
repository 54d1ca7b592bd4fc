// Package cmd holds build metadata for the tns binary, set with
// -ldflags "-X github.com/thoreinstein/tns/cmd.Version=...".
package cmd

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// Date is when the binary was built.
	Date = "unknown"
)
