package buildinfo

// These values are injected via ldflags for release binaries. They
// default to empty for local/dev builds, where the version command
// falls back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
