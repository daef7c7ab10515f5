package releases

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/types"
)

// Info is the on-disk footprint of a release
type Info struct {
	Entry
	ModTime time.Time
	// Size is the recursive size in bytes, only filled when requested
	Size int64
}

// Inspect stats a release. Computing the size walks the whole tree, so it
// is only done when withSize is set.
func Inspect(fsys types.FS, e Entry, withSize bool) (Info, error) {
	st, err := fsys.Stat(e.Path)
	if err != nil {
		return Info{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", e.Path).
			WithDetail("path", e.Path)
	}
	info := Info{Entry: e, ModTime: st.ModTime()}
	if withSize {
		size, err := DirSize(fsys, e.Path)
		if err != nil {
			return Info{}, err
		}
		info.Size = size
	}
	return info, nil
}

// DirSize returns the total size of regular files below dir. Symlinks are
// counted by their own size and never followed.
func DirSize(fsys types.FS, dir string) (int64, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir).
			WithDetail("path", dir)
	}

	var total int64
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			sub, err := DirSize(fsys, path)
			if err != nil {
				return 0, err
			}
			total += sub
			continue
		}
		info, err := fsys.Lstat(path)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
				WithDetail("path", path)
		}
		if info.Mode().IsRegular() || info.Mode()&fs.ModeSymlink != 0 {
			total += info.Size()
		}
	}
	return total, nil
}
