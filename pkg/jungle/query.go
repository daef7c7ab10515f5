package jungle

import (
	"github.com/arthur-debert/jungle/pkg/link"
	"github.com/arthur-debert/jungle/pkg/types"
)

// Current returns what the current link resolves to
func (j *Jungle) Current() (link.Target, error) {
	return j.link.Read()
}

// Status compares current with Head by value
func (j *Jungle) Status() (types.StatusResult, error) {
	cur, err := j.link.Read()
	if err != nil {
		return types.StatusResult{}, err
	}
	set, err := j.releases()
	if err != nil {
		return types.StatusResult{}, err
	}
	head, err := set.Head()
	if err != nil {
		return types.StatusResult{}, err
	}

	state := types.StateDegraded
	if cur.Version.Equal(head.Version) {
		state = types.StateCurrent
	}
	return types.StatusResult{
		Current: cur.Version.String(),
		Head:    head.Version.String(),
		State:   state,
	}, nil
}

// List returns every version with current and head markers. A missing or
// broken current link just leaves every Current marker false.
func (j *Jungle) List() (types.ListResult, error) {
	set, err := j.releases()
	if err != nil {
		return types.ListResult{}, err
	}

	result := types.ListResult{Parent: j.parent, Versions: []types.VersionInfo{}}
	cur, curErr := j.link.Read()
	for i, e := range set {
		result.Versions = append(result.Versions, types.VersionInfo{
			Version:   e.Version.String(),
			Directory: e.Name,
			Current:   curErr == nil && cur.Path == e.Path,
			Head:      i == len(set)-1,
		})
	}
	return result, nil
}
