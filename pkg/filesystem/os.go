package filesystem

import (
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/spf13/afero"
)

// NewOS creates the OS filesystem implementation. Rename maps to
// rename(2), which replaces an existing symlink atomically on POSIX systems.
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory creates an in-memory filesystem. It has no symlink support and
// is meant for tests that only scan release directories.
func NewMemory() (types.FS, afero.Fs) {
	mem := afero.NewMemMapFs()
	return NewAferoFS(mem), mem
}
