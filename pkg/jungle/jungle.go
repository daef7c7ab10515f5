package jungle

import (
	"os"
	"time"

	"github.com/arthur-debert/jungle/pkg/config"
	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/link"
	"github.com/arthur-debert/jungle/pkg/logging"
	"github.com/arthur-debert/jungle/pkg/releases"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/rs/zerolog"
)

// Jungle runs lifecycle operations on one parent directory
type Jungle struct {
	fs     types.FS
	parent string
	root   string
	link   *link.Link
	now    func() time.Time
	logger zerolog.Logger
}

// Option customizes a Jungle
type Option func(*Jungle)

// WithClock replaces time.Now for age based pruning
func WithClock(now func() time.Time) Option {
	return func(j *Jungle) { j.now = now }
}

// New opens the jungle at parent, which must be an existing directory.
// A nil cfg means the built-in defaults.
func New(fs types.FS, parent string, cfg *config.Config, opts ...Option) (*Jungle, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Defaults(); err != nil {
			return nil, err
		}
	}

	st, err := fs.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrInvalidParent, "jungle directory %s does not exist", parent).
				WithDetail("path", parent)
		}
		return nil, errors.Wrapf(err, errors.ErrInvalidParent, "cannot access jungle directory %s", parent).
			WithDetail("path", parent)
	}
	if !st.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidParent, "%s is not a directory", parent).
			WithDetail("path", parent)
	}

	j := &Jungle{
		fs:     fs,
		parent: parent,
		root:   cfg.ReleasesRoot(parent),
		link:   link.New(fs, parent, cfg.LinkOptions()),
		now:    time.Now,
		logger: logging.GetLogger("jungle").With().Str("parent", parent).Logger(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Parent returns the jungle directory
func (j *Jungle) Parent() string { return j.parent }

// ReleasesRoot returns the directory holding the versions
func (j *Jungle) ReleasesRoot() string { return j.root }

// LinkPath returns the path of the current link
func (j *Jungle) LinkPath() string { return j.link.Path() }

// releases lists the live version set. A releases subdirectory that does
// not exist yet is an empty set; a missing parent is still an error.
func (j *Jungle) releases() (releases.Set, error) {
	set, err := releases.List(j.fs, j.root)
	if err != nil {
		if j.root != j.parent && errors.IsErrorCode(err, errors.ErrInvalidParent) {
			j.logger.Debug().Str("root", j.root).Msg("Releases directory does not exist")
			return nil, nil
		}
		return nil, err
	}
	return set, nil
}

// switchTo points current at e and reports the transition. When current
// already holds the exact link value nothing is written.
func (j *Jungle) switchTo(e releases.Entry) (types.SwitchResult, error) {
	result := types.SwitchResult{
		Version:   e.Version.String(),
		Directory: e.Name,
		Changed:   true,
	}

	prev, err := j.link.Read()
	if err == nil {
		result.Previous = prev.Version.String()
		if prev.Path == e.Path && prev.Raw == j.link.LinkValue(e.Path) {
			result.Changed = false
			j.logger.Info().Str("version", result.Version).Msg("Current already points at target")
			return result, nil
		}
	}

	if err := j.link.AtomicSet(e.Path); err != nil {
		return result, err
	}
	return result, nil
}
