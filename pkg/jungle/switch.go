package jungle

import (
	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/types"
)

// Init points a fresh jungle's current link at Head. It refuses to touch
// a jungle that already has anything at the link path, even a broken link.
func (j *Jungle) Init() (types.SwitchResult, error) {
	exists, err := j.link.Exists()
	if err != nil {
		return types.SwitchResult{}, err
	}
	if exists {
		return types.SwitchResult{}, errors.Newf(errors.ErrAlreadyInitialized,
			"%s already exists, will not initialise existing jungle", j.link.Path()).
			WithDetail("path", j.link.Path())
	}

	set, err := j.releases()
	if err != nil {
		return types.SwitchResult{}, err
	}
	head, err := set.Head()
	if err != nil {
		return types.SwitchResult{}, errors.Newf(errors.ErrNoVersions,
			"no versions in %s, cannot initialise", j.root).WithDetail("root", j.root)
	}

	if err := j.link.AtomicSet(head.Path); err != nil {
		return types.SwitchResult{}, err
	}
	j.logger.Info().Str("version", head.Name).Msg("Initialised jungle")
	return types.SwitchResult{
		Version:   head.Version.String(),
		Directory: head.Name,
		Changed:   true,
	}, nil
}

// Set points current at the version named by arg. It does not need a
// valid current link, so it also repairs a broken one.
func (j *Jungle) Set(arg string) (types.SwitchResult, error) {
	set, err := j.releases()
	if err != nil {
		return types.SwitchResult{}, err
	}
	target, err := set.Resolve(arg)
	if err != nil {
		return types.SwitchResult{}, err
	}
	return j.switchTo(target)
}

// Upgrade points current at Head. The jungle must have a valid current
// link; when it is already at Head (by value) nothing is written.
func (j *Jungle) Upgrade() (types.SwitchResult, error) {
	cur, err := j.link.Read()
	if err != nil {
		return types.SwitchResult{}, err
	}

	set, err := j.releases()
	if err != nil {
		return types.SwitchResult{}, err
	}
	head, err := set.Head()
	if err != nil {
		return types.SwitchResult{}, err
	}

	if cur.Version.Equal(head.Version) {
		j.logger.Info().Str("version", cur.Name).Msg("Already at head")
		return types.SwitchResult{
			Previous:  cur.Version.String(),
			Version:   cur.Version.String(),
			Directory: cur.Name,
		}, nil
	}
	return j.switchTo(head)
}

// Degrade points current at Head-1 of the live version set. With dryRun
// the target is computed and returned without touching the link.
func (j *Jungle) Degrade(dryRun bool) (types.SwitchResult, error) {
	set, err := j.releases()
	if err != nil {
		return types.SwitchResult{}, err
	}
	target, err := set.HeadMinus1()
	if err != nil {
		return types.SwitchResult{}, err
	}

	if dryRun {
		result := types.SwitchResult{
			Version:   target.Version.String(),
			Directory: target.Name,
			DryRun:    true,
		}
		if cur, err := j.link.Read(); err == nil {
			result.Previous = cur.Version.String()
			result.Changed = cur.Path != target.Path
		} else {
			result.Changed = true
		}
		return result, nil
	}
	return j.switchTo(target)
}
