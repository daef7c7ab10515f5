package types

// Jungle states reported by status
const (
	StateCurrent  = "current"
	StateDegraded = "degraded"
)

// SwitchResult is returned by every command that repoints the current link
type SwitchResult struct {
	// Previous is the canonical version current pointed at before the
	// switch, empty when there was no readable current link.
	Previous string `json:"previous,omitempty" yaml:"previous,omitempty"`
	// Version is the canonical version current points at afterwards (or
	// would point at, for a dry run).
	Version string `json:"version" yaml:"version"`
	// Directory is the release directory name of Version.
	Directory string `json:"directory" yaml:"directory"`
	// Changed is false when current already pointed at the target.
	Changed bool `json:"changed" yaml:"changed"`
	DryRun  bool `json:"dryRun" yaml:"dryRun"`
}

// StatusResult is returned by the status command
type StatusResult struct {
	Current string `json:"current" yaml:"current"`
	Head    string `json:"head" yaml:"head"`
	State   string `json:"state" yaml:"state"`
}

// DeleteResult is returned by the delete command
type DeleteResult struct {
	Version   string `json:"version" yaml:"version"`
	Directory string `json:"directory" yaml:"directory"`
	DryRun    bool   `json:"dryRun" yaml:"dryRun"`
}

// PrunedVersion describes one release selected by prune
type PrunedVersion struct {
	Version   string `json:"version" yaml:"version"`
	Directory string `json:"directory" yaml:"directory"`
	Size      int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PruneResult is returned by the prune command. Removed is in deletion
// order, oldest version first. Failed lists releases that could not be
// inspected, then removals that failed.
type PruneResult struct {
	Current   string          `json:"current" yaml:"current"`
	Removed   []PrunedVersion `json:"removed" yaml:"removed"`
	Failed    []PrunedVersion `json:"failed,omitempty" yaml:"failed,omitempty"`
	Reclaimed int64           `json:"reclaimed" yaml:"reclaimed"`
	DryRun    bool            `json:"dryRun" yaml:"dryRun"`
}

// VersionInfo describes one release directory for list
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Directory string `json:"directory" yaml:"directory"`
	Current   bool   `json:"current" yaml:"current"`
	Head      bool   `json:"head" yaml:"head"`
}

// ListResult is returned by the list command, ascending by version
type ListResult struct {
	Parent   string        `json:"parent" yaml:"parent"`
	Versions []VersionInfo `json:"versions" yaml:"versions"`
}

// CurrentResult is returned by the current command
type CurrentResult struct {
	Version   string `json:"version" yaml:"version"`
	Directory string `json:"directory" yaml:"directory"`
	// Target is the raw link content
	Target string `json:"target" yaml:"target"`
}
