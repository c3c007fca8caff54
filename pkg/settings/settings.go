// Package settings provides build metadata, runtime configuration, and
// context helpers shared by the pickx CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "pickx"

// VersionInformation is populated at build time via ldflags and holds
// the commit hash, semantic version, and build timestamp of the
// running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration for a single execution: logging level,
// output behavior, and error handling.
type Run struct {
	MinLogLevel int8
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool
}

// NewCliParams returns a Run with the defaults the CLI starts from.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 2, // errors only; the TUI owns the terminal
		IsQuiet:     false,
		NoColor:     false,
		ExitOnError: true,
	}
}
