// Package prune selects which releases a prune run removes.
//
// Selection is pure: it works on already inspected releases and never
// touches the filesystem. Two strategies compose. Filter keeps releases
// matching every age and iterations criterion that is set; Consume then
// walks those oldest-first, taking releases while the jungle is still at or
// over the size limit. The release current points at is never selected.
package prune

import (
	"time"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/releases"
	"github.com/arthur-debert/jungle/pkg/version"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Policy is the set of prune criteria. Unset criteria do not constrain.
type Policy struct {
	// Age selects releases modified more than Age ago
	Age mo.Option[time.Duration]
	// Iterations keeps the newest N releases
	Iterations mo.Option[int]
	// Size is the total byte size the jungle should shrink below
	Size mo.Option[int64]
}

// Empty reports whether no criterion is set
func (p Policy) Empty() bool {
	return p.Age.IsAbsent() && p.Iterations.IsAbsent() && p.Size.IsAbsent()
}

// NeedsSize reports whether releases must be measured before selection
func (p Policy) NeedsSize() bool {
	return p.Size.IsPresent()
}

// Validate rejects empty policies and negative criteria
func (p Policy) Validate() error {
	if p.Empty() {
		return errors.New(errors.ErrInvalidInput, "prune needs at least one of --age, --iterations or --size")
	}
	if age, ok := p.Age.Get(); ok && age < 0 {
		return errors.Newf(errors.ErrInvalidInput, "age must not be negative, got %s", age)
	}
	if n, ok := p.Iterations.Get(); ok && n < 0 {
		return errors.Newf(errors.ErrInvalidInput, "iterations must not be negative, got %d", n)
	}
	if size, ok := p.Size.Get(); ok && size < 0 {
		return errors.Newf(errors.ErrInvalidInput, "size must not be negative, got %d", size)
	}
	return nil
}

// Select returns the releases to remove, oldest first. infos must be the
// whole jungle in ascending version order, current included, since both
// the iterations rank and the size total are computed over all of them.
func Select(infos []releases.Info, current version.Version, p Policy, now time.Time) []releases.Info {
	eligible := Filter(infos, current, p, now)
	if limit, ok := p.Size.Get(); ok {
		return Consume(infos, eligible, limit)
	}
	return eligible
}

// Filter returns the releases matching every age and iterations criterion
// that is set, excluding current
func Filter(infos []releases.Info, current version.Version, p Policy, now time.Time) []releases.Info {
	return lo.Filter(infos, func(info releases.Info, rank int) bool {
		if info.Version.Equal(current) {
			return false
		}
		if age, ok := p.Age.Get(); ok && now.Sub(info.ModTime) <= age {
			return false
		}
		if keep, ok := p.Iterations.Get(); ok && rank >= len(infos)-keep {
			return false
		}
		return true
	})
}

// Consume takes eligible releases oldest-first while the size retained by
// the whole jungle is still at or above limit.
func Consume(all, eligible []releases.Info, limit int64) []releases.Info {
	retained := TotalSize(all)

	var taken []releases.Info
	for _, info := range eligible {
		if retained < limit {
			break
		}
		taken = append(taken, info)
		retained -= info.Size
	}
	return taken
}

// TotalSize sums the measured size of infos
func TotalSize(infos []releases.Info) int64 {
	return lo.SumBy(infos, func(info releases.Info) int64 { return info.Size })
}
