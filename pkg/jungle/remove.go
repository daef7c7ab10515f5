package jungle

import (
	stderrors "errors"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/prune"
	"github.com/arthur-debert/jungle/pkg/releases"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/docker/go-units"
	"github.com/samber/lo"
)

// Delete removes the version directory named by arg. The version current
// points at (compared by value) can never be deleted.
func (j *Jungle) Delete(arg string, dryRun bool) (types.DeleteResult, error) {
	set, err := j.releases()
	if err != nil {
		return types.DeleteResult{}, err
	}
	target, err := set.Resolve(arg)
	if err != nil {
		return types.DeleteResult{}, err
	}

	result := types.DeleteResult{
		Version:   target.Version.String(),
		Directory: target.Name,
		DryRun:    dryRun,
	}

	if err := j.guard(target); err != nil {
		return result, err
	}
	if dryRun {
		j.logger.Info().Str("version", target.Name).Msg("Would delete version")
		return result, nil
	}
	if err := j.remove(target); err != nil {
		return result, err
	}
	return result, nil
}

// Prune removes the versions selected by policy, oldest first. Every
// removal re-checks current on its own and failures do not stop the
// run; they are reported together as PRUNE_FAILED after it. Releases
// that cannot be inspected are reported as failed and left in place.
func (j *Jungle) Prune(policy prune.Policy, dryRun bool) (types.PruneResult, error) {
	if err := policy.Validate(); err != nil {
		return types.PruneResult{}, err
	}

	cur, err := j.link.Read()
	if err != nil {
		return types.PruneResult{}, err
	}

	set, err := j.releases()
	if err != nil {
		return types.PruneResult{}, err
	}
	result := types.PruneResult{
		Current: cur.Version.String(),
		Removed: []types.PrunedVersion{},
		DryRun:  dryRun,
	}
	var failures []error

	// A release that cannot be inspected keeps its rank but is never
	// selected: its age reads as now and its size as zero.
	uninspected := map[string]bool{}
	infos := make([]releases.Info, 0, len(set))
	for _, e := range set {
		info, err := releases.Inspect(j.fs, e, policy.NeedsSize())
		if err != nil {
			j.logger.Warn().Err(err).Str("version", e.Name).Msg("Cannot inspect release, skipping it")
			uninspected[e.Path] = true
			failures = append(failures, err)
			result.Failed = append(result.Failed, types.PrunedVersion{
				Version:   e.Version.String(),
				Directory: e.Name,
				Error:     err.Error(),
			})
			info = releases.Info{Entry: e, ModTime: j.now()}
		}
		infos = append(infos, info)
	}

	selected := lo.Reject(prune.Select(infos, cur.Version, policy, j.now()),
		func(i releases.Info, _ int) bool { return uninspected[i.Path] })
	j.logger.Debug().
		Strs("selected", lo.Map(selected, func(i releases.Info, _ int) string { return i.Name })).
		Msg("Prune selection")

	for _, info := range selected {
		pv := types.PrunedVersion{
			Version:   info.Version.String(),
			Directory: info.Name,
			Size:      info.Size,
		}
		if !dryRun {
			if err := j.remove(info.Entry); err != nil {
				pv.Error = err.Error()
				failures = append(failures, err)
			}
		}
		if pv.Error != "" {
			result.Failed = append(result.Failed, pv)
			continue
		}
		result.Removed = append(result.Removed, pv)
		result.Reclaimed += pv.Size
	}

	j.logger.Info().
		Int("removed", len(result.Removed)).
		Int("failed", len(result.Failed)).
		Str("reclaimed", units.HumanSize(float64(result.Reclaimed))).
		Bool("dryRun", dryRun).
		Msg("Prune finished")

	if len(failures) > 0 {
		return result, errors.Wrapf(stderrors.Join(failures...), errors.ErrPruneFailed,
			"failed to remove %d of %d versions", len(failures), len(selected)).
			WithDetail("failed", len(failures))
	}
	return result, nil
}

// guard reads current as late as possible and refuses to let e go if
// current points at its version. A jungle without any current link is
// unguarded; one whose link exists but cannot be resolved is refused,
// since we cannot tell what it protects.
func (j *Jungle) guard(e releases.Entry) error {
	exists, err := j.link.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	cur, err := j.link.Read()
	if err != nil {
		return errors.Wrapf(err, errors.ErrNoCurrent, "cannot verify %s is not current", e.Name)
	}
	if cur.Version.Equal(e.Version) {
		return errors.Newf(errors.ErrCannotDeleteCurrent,
			"version %s is current, will not delete it", e.Name).
			WithDetail("version", e.Name).
			WithDetail("current", cur.Name)
	}
	return nil
}

func (j *Jungle) remove(e releases.Entry) error {
	// Last look before the point of no return
	if err := j.guard(e); err != nil {
		return err
	}
	if err := j.fs.RemoveAll(e.Path); err != nil {
		return errors.Wrapf(err, errors.ErrRemove, "failed to remove %s", e.Path).
			WithDetail("path", e.Path)
	}
	j.logger.Info().Str("version", e.Name).Msg("Deleted version")
	return nil
}
