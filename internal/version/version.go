// Package version provides version information for fsgen.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// Templates is the number of embedded templates.
	Templates int `json:"templates"`
}

// Get returns the current version information. templates is the number of
// embedded templates.
func Get(templates int) Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Templates: templates,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("fsgen:\n  Version:   %s\n  Build ID:  %s/%s\n  Go:        %s\n  Templates: %d",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.Templates)
}

// FullVersionString appends the detected toolchain to the version block.
func FullVersionString(info Info, tools ...ToolInfo) string {
	var b strings.Builder
	b.WriteString(info.String())
	if len(tools) > 0 {
		b.WriteString("\n\nToolchain:")
		for _, t := range tools {
			b.WriteString("\n")
			b.WriteString(t.String())
		}
	}
	return b.String()
}
