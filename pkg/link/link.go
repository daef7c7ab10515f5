// Package link reads and atomically switches a jungle's current link.
//
// The link is only ever replaced by renaming a freshly created symlink
// over it, so a concurrent reader sees either the old or the new target
// and a crash leaves one of the two in place. The link is never removed
// and recreated.
package link

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/arthur-debert/jungle/pkg/version"
)

// Defaults used when Options fields are empty
const (
	DefaultName       = "current"
	DefaultTempSuffix = ".new"
	// DefaultStaleAfter is how old another process's temporary link must
	// be before it is swept
	DefaultStaleAfter = time.Hour
)

// Reasons attached to NO_CURRENT errors under the "reason" detail key
const (
	ReasonMissing      = "missing"
	ReasonNotSymlink   = "not_symlink"
	ReasonBroken       = "broken"
	ReasonNotDirectory = "not_directory"
	ReasonUnparseable  = "unparseable"
)

// Options configure a Link
type Options struct {
	// Name of the link inside the parent directory
	Name string
	// TempSuffix is appended to Name (plus the pid) for the temporary link
	TempSuffix string
	// Absolute makes new links point at absolute paths instead of paths
	// relative to the parent
	Absolute bool
	// StaleAfter is the age past which temporary links left by other
	// processes are removed. Zero means DefaultStaleAfter.
	StaleAfter time.Duration
}

// Link is the current symlink of one parent directory
type Link struct {
	fs     types.FS
	parent string
	opts   Options
	pid    int
}

// Target is what a valid current link resolves to
type Target struct {
	// Name is the base name of the target directory
	Name    string
	Version version.Version
	// Path is the absolute path of the target directory
	Path string
	// Raw is the link content as stored on disk
	Raw string
}

// New returns the current link of parent
func New(fs types.FS, parent string, opts Options) *Link {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.TempSuffix == "" {
		opts.TempSuffix = DefaultTempSuffix
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	return &Link{fs: fs, parent: parent, opts: opts, pid: os.Getpid()}
}

// Path returns the absolute path of the link
func (l *Link) Path() string {
	return filepath.Join(l.parent, l.opts.Name)
}

// TempPath returns the temporary path used while switching. It is unique
// per process so racing invocations never share a temporary link.
func (l *Link) TempPath() string {
	return fmt.Sprintf("%s%s.%d", l.Path(), l.opts.TempSuffix, l.pid)
}

// Exists reports whether anything, even a broken link, occupies the link path
func (l *Link) Exists() (bool, error) {
	_, err := l.fs.Lstat(l.Path())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", l.Path())
}

// Read resolves the link. Any state other than a symlink to an existing
// directory with a version name is a NO_CURRENT error with a reason detail.
func (l *Link) Read() (Target, error) {
	path := l.Path()

	info, err := l.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Target{}, l.noCurrent(ReasonMissing, "%s does not exist", path)
		}
		return Target{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return Target{}, l.noCurrent(ReasonNotSymlink, "%s is not a symlink", path)
	}

	raw, err := l.fs.Readlink(path)
	if err != nil {
		return Target{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", path)
	}

	resolved := raw
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(l.parent, resolved)
	}
	resolved = filepath.Clean(resolved)

	st, err := l.fs.Stat(resolved)
	if err != nil {
		return Target{}, l.noCurrent(ReasonBroken, "%s points at missing %s", path, raw).
			WithDetail("target", raw)
	}
	if !st.IsDir() {
		return Target{}, l.noCurrent(ReasonNotDirectory, "%s points at %s which is not a directory", path, raw).
			WithDetail("target", raw)
	}

	name := filepath.Base(resolved)
	v, err := version.Parse(name)
	if err != nil {
		return Target{}, l.noCurrent(ReasonUnparseable, "%s points at %s which is not a version", path, raw).
			WithDetail("target", raw)
	}

	return Target{Name: name, Version: v, Path: resolved, Raw: raw}, nil
}

func (l *Link) noCurrent(reason, format string, args ...interface{}) *errors.JungleError {
	return errors.Newf(errors.ErrNoCurrent, format, args...).
		WithDetail("reason", reason).
		WithDetail("path", l.Path())
}

// LinkValue returns what a link to dir would contain: relative to the
// parent unless Absolute is set or dir lies outside the parent.
func (l *Link) LinkValue(dir string) string {
	if l.opts.Absolute {
		return filepath.Clean(dir)
	}
	rel, err := filepath.Rel(l.parent, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Clean(dir)
	}
	return rel
}

// AtomicSet points the link at dir. A symlink is created at TempPath and
// renamed over the link. If anything fails before the rename the existing
// link is untouched; a leftover temporary link from a crashed run is
// replaced on the next call.
func (l *Link) AtomicSet(dir string) error {
	logger := logging.GetLogger("link")
	value := l.LinkValue(dir)
	tmp := l.TempPath()

	if _, err := l.fs.Lstat(tmp); err == nil {
		logger.Debug().Str("path", tmp).Msg("Removing stale temporary link")
		if err := l.fs.Remove(tmp); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to remove stale temporary link %s", tmp)
		}
	}

	if err := l.fs.Symlink(value, tmp); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create temporary link %s", tmp).
			WithDetail("target", value)
	}

	if err := l.fs.Rename(tmp, l.Path()); err != nil {
		if rmErr := l.fs.Remove(tmp); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", tmp).Msg("Failed to clean up temporary link")
		}
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to replace %s", l.Path()).
			WithDetail("target", value)
	}

	logger.Info().Str("link", l.Path()).Str("target", value).Msg("Switched current link")
	l.sweepStale()
	return nil
}

// sweepStale removes temporary links left behind by other processes that
// crashed between symlink and rename. Links younger than StaleAfter may
// belong to a switch in progress and are kept. Failures are only logged.
func (l *Link) sweepStale() {
	logger := logging.GetLogger("link")
	entries, err := l.fs.ReadDir(l.parent)
	if err != nil {
		logger.Debug().Err(err).Msg("Cannot scan for stale temporary links")
		return
	}

	prefix := l.opts.Name + l.opts.TempSuffix + "."
	now := time.Now()
	for _, entry := range entries {
		pid, ok := strings.CutPrefix(entry.Name(), prefix)
		if !ok {
			continue
		}
		if _, err := strconv.Atoi(pid); err != nil {
			continue
		}
		path := filepath.Join(l.parent, entry.Name())
		info, err := l.fs.Lstat(path)
		if err != nil || info.Mode()&fs.ModeSymlink == 0 {
			continue
		}
		if now.Sub(info.ModTime()) < l.opts.StaleAfter {
			continue
		}
		if err := l.fs.Remove(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to remove stale temporary link")
			continue
		}
		logger.Debug().Str("path", path).Msg("Removed stale temporary link")
	}
}
