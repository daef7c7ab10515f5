// Package releases enumerates the version directories of a jungle.
//
// A release root is a directory whose immediate subdirectories named
// after a valid version are releases. Anything else in the root (files,
// symlinks such as the current link, directories with other names) is
// ignored. The set is always recomputed from disk; callers must not cache
// it across operations.
package releases

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/arthur-debert/jungle/pkg/version"
	"github.com/samber/lo"
)

// Entry is one release directory
type Entry struct {
	// Name is the directory name as found on disk, e.g. "0.4" or "0.4.0"
	Name    string
	Version version.Version
	// Path is the absolute path of the directory
	Path string
}

// Set is an ascending list of releases. Equal-ranked versions are ordered
// by directory name.
type Set []Entry

// List scans root and returns its releases in ascending order.
func List(fs types.FS, root string) (Set, error) {
	logger := logging.GetLogger("releases")

	entries, err := fs.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrInvalidParent, "release directory %s does not exist", root).
				WithDetail("path", root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read release directory %s", root).
			WithDetail("path", root)
	}

	var set Set
	for _, entry := range entries {
		// DirEntry reports symlinks as non-directories, so the current
		// link never shows up here
		if !entry.IsDir() {
			continue
		}
		v, err := version.Parse(entry.Name())
		if err != nil {
			logger.Trace().Str("name", entry.Name()).Msg("Skipping non-version directory")
			continue
		}
		set = append(set, Entry{
			Name:    entry.Name(),
			Version: v,
			Path:    filepath.Join(root, entry.Name()),
		})
	}

	sort.SliceStable(set, func(i, j int) bool {
		return set[i].less(set[j])
	})

	logger.Debug().Str("root", root).Int("count", len(set)).Msg("Listed releases")
	return set, nil
}

func (e Entry) less(other Entry) bool {
	if c := version.Compare(e.Version, other.Version); c != 0 {
		return c < 0
	}
	return e.Name < other.Name
}

// Head returns the highest release of the set
func (s Set) Head() (Entry, error) {
	if len(s) == 0 {
		return Entry{}, errors.New(errors.ErrNoVersions, "no versions found")
	}
	return s[len(s)-1], nil
}

// HeadMinus1 returns the release ranked immediately below Head
func (s Set) HeadMinus1() (Entry, error) {
	if len(s) < 2 {
		return Entry{}, errors.Newf(errors.ErrInsufficientVersions,
			"at least 2 versions are required, found %d", len(s)).
			WithDetail("count", len(s))
	}
	return s[len(s)-2], nil
}

// Head lists root and returns its highest release
func Head(fs types.FS, root string) (Entry, error) {
	set, err := List(fs, root)
	if err != nil {
		return Entry{}, err
	}
	return set.Head()
}

// HeadMinus1 lists root and returns the release ranked below Head
func HeadMinus1(fs types.FS, root string) (Entry, error) {
	set, err := List(fs, root)
	if err != nil {
		return Entry{}, err
	}
	return set.HeadMinus1()
}

// Find returns the release whose directory is named exactly name
func (s Set) Find(name string) (Entry, bool) {
	return lo.Find(s, func(e Entry) bool { return e.Name == name })
}

// Lookup returns every release ranked equal to v, in set order
func (s Set) Lookup(v version.Version) []Entry {
	return lo.Filter(s, func(e Entry, _ int) bool { return e.Version.Equal(v) })
}

// Resolve maps a user supplied version argument to a release. The
// argument must be a valid version. A directory with exactly that name
// wins; otherwise the highest-sorting equal-ranked directory is used, so
// "2.0.0" finds a directory named "2.0".
func (s Set) Resolve(arg string) (Entry, error) {
	v, err := version.Parse(arg)
	if err != nil {
		return Entry{}, err
	}
	if e, ok := s.Find(arg); ok {
		return e, nil
	}
	if matches := s.Lookup(v); len(matches) > 0 {
		return matches[len(matches)-1], nil
	}
	return Entry{}, errors.Newf(errors.ErrVersionNotFound, "version %s does not exist", arg).
		WithDetail("version", arg)
}

// Names returns the directory names of the set, in order
func (s Set) Names() []string {
	return lo.Map(s, func(e Entry, _ int) string { return e.Name })
}
