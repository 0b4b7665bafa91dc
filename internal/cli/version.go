package cli

import "fmt"

// VersionInfo holds build-time version data.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// String renders the version line, substituting defaults for unset fields.
func (v VersionInfo) String() string {
	version, commit, date := v.Version, v.Commit, v.Date

	// Use default values if not set
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}

	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
