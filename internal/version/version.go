// Package version holds build information for the jungle binary.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/jungle/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/jungle/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/jungle/internal/version.Date={{.Date}}
)

// Info renders the build information, one field per line
func Info() string {
	return fmt.Sprintf("jungle version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
