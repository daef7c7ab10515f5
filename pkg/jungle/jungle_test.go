// pkg/jungle/jungle_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dir)
// PURPOSE: Test jungle opening, init, set, upgrade, degrade and queries

package jungle_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/jungle/pkg/config"
	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/jungle"
	"github.com/arthur-debert/jungle/pkg/testutil"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, env *testutil.TestEnvironment, opts ...jungle.Option) *jungle.Jungle {
	t.Helper()
	j, err := jungle.New(env.FS, env.Parent, nil, opts...)
	require.NoError(t, err)
	return j
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errors.GetErrorCode(err), "error: %v", err)
}

func TestNew_InvalidParent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteFile("afile", "x")

	_, err := jungle.New(env.FS, env.Path("missing"), nil)
	assertCode(t, err, errors.ErrInvalidParent)

	_, err = jungle.New(env.FS, env.Path("afile"), nil)
	assertCode(t, err, errors.ErrInvalidParent)
}

func TestInit(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0", "1.5", "notes")
	j := open(t, env)

	result, err := j.Init()
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Version)
	assert.True(t, result.Changed)
	testutil.AssertCurrent(t, env, "2.0")
}

func TestInit_AlreadyInitialized(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	env.SetCurrent("1.0")

	_, err := open(t, env).Init()
	assertCode(t, err, errors.ErrAlreadyInitialized)
	testutil.AssertCurrent(t, env, "1.0")
}

func TestInit_BrokenLinkCountsAsInitialized(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0")
	env.SetCurrent("0.1")

	_, err := open(t, env).Init()
	assertCode(t, err, errors.ErrAlreadyInitialized)
}

func TestInit_NoVersions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("logs", "1")
	env.WriteFile("2.0", "a file, not a version directory")

	_, err := open(t, env).Init()
	assertCode(t, err, errors.ErrNoVersions)
	assert.Equal(t, 1, strings.Count(err.Error(), string(errors.ErrNoVersions)), err.Error())
	assert.False(t, env.Exists("current"))
}

func TestInit_ReleasesDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	cfg, err := config.Defaults()
	require.NoError(t, err)
	cfg.Releases.Dir = "releases"

	j, err := jungle.New(env.FS, env.Parent, cfg)
	require.NoError(t, err)

	// Missing releases directory is just an empty jungle
	_, err = j.Init()
	assertCode(t, err, errors.ErrNoVersions)

	env.AddVersions("releases/1.0", "releases/1.1")
	_, err = j.Init()
	require.NoError(t, err)
	testutil.AssertCurrent(t, env, "releases/1.1")

	cur, err := j.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.1", cur.Name)
}

func TestSet(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0", "3.0")
	env.SetCurrent("3.0")
	j := open(t, env)

	result, err := j.Set("1.0")
	require.NoError(t, err)
	assert.Equal(t, "3.0", result.Previous)
	assert.Equal(t, "1.0", result.Version)
	assert.True(t, result.Changed)
	testutil.AssertCurrent(t, env, "1.0")

	// Equal-ranked spelling finds the directory
	result, err = j.Set("2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Directory)
	testutil.AssertCurrent(t, env, "2.0")
}

func TestSet_Errors(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0")
	env.SetCurrent("1.0")
	j := open(t, env)

	_, err := j.Set("1.3pl1")
	assertCode(t, err, errors.ErrInvalidVersion)

	_, err = j.Set("4.0")
	assertCode(t, err, errors.ErrVersionNotFound)

	testutil.AssertCurrent(t, env, "1.0")
}

func TestSet_RepairsBrokenLink(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	env.SetCurrent("0.9")
	j := open(t, env)

	_, err := j.Current()
	assertCode(t, err, errors.ErrNoCurrent)

	result, err := j.Set("2.0")
	require.NoError(t, err)
	assert.Empty(t, result.Previous)
	testutil.AssertCurrent(t, env, "2.0")
}

func TestSet_SameTargetDoesNotWrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	env.SetCurrent("2.0")

	ffs := testutil.NewFaultFS(env.FS)
	j, err := jungle.New(ffs, env.Parent, nil)
	require.NoError(t, err)

	result, err := j.Set("2.0")
	require.NoError(t, err)
	assert.False(t, result.Changed)
	for _, call := range ffs.Calls() {
		assert.NotContains(t, call, testutil.OpSymlink)
		assert.NotContains(t, call, testutil.OpRename)
	}
}

func TestUpgradeAndStatus(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0", "3.0")
	env.SetCurrent("1.0")
	j := open(t, env)

	status, err := j.Status()
	require.NoError(t, err)
	assert.Equal(t, types.StateDegraded, status.State)
	assert.Equal(t, "1.0", status.Current)
	assert.Equal(t, "3.0", status.Head)

	result, err := j.Upgrade()
	require.NoError(t, err)
	assert.Equal(t, "1.0", result.Previous)
	assert.Equal(t, "3.0", result.Version)

	status, err = j.Status()
	require.NoError(t, err)
	assert.Equal(t, types.StateCurrent, status.State)

	cur, err := j.Current()
	require.NoError(t, err)
	assert.Equal(t, "3.0", cur.Name)
}

func TestUpgrade_AlreadyAtHead(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0", "2.0.0")
	env.SetCurrent("2.0")
	j := open(t, env)

	// 2.0.0 sorts after 2.0 but is the same version
	result, err := j.Upgrade()
	require.NoError(t, err)
	assert.False(t, result.Changed)
	testutil.AssertCurrent(t, env, "2.0")

	status, err := j.Status()
	require.NoError(t, err)
	assert.Equal(t, types.StateCurrent, status.State)
}

func TestUpgrade_NoCurrent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	j := open(t, env)

	_, err := j.Upgrade()
	assertCode(t, err, errors.ErrNoCurrent)
	assert.False(t, env.Exists("current"))

	_, err = j.Status()
	assertCode(t, err, errors.ErrNoCurrent)
}

func TestDegrade(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0", "3.0")
	env.SetCurrent("3.0")
	j := open(t, env)

	result, err := j.Degrade(false)
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Version)
	testutil.AssertCurrent(t, env, "2.0")

	// Head-1 is recomputed from the live set, Head is still 3.0
	result, err = j.Degrade(false)
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Version)
	assert.False(t, result.Changed)
	testutil.AssertCurrent(t, env, "2.0")

	// A new Head moves Head-1 along
	env.AddVersions("4.0")
	result, err = j.Degrade(false)
	require.NoError(t, err)
	assert.Equal(t, "3.0", result.Version)
}

func TestDegrade_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0", "3.0")
	env.SetCurrent("3.0")
	j := open(t, env)

	result, err := j.Degrade(true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, "3.0", result.Previous)

	cur, err := j.Current()
	require.NoError(t, err)
	assert.Equal(t, "3.0", cur.Name)
}

func TestDegrade_InsufficientVersions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0")
	env.SetCurrent("1.0")

	_, err := open(t, env).Degrade(false)
	assertCode(t, err, errors.ErrInsufficientVersions)
	testutil.AssertCurrent(t, env, "1.0")
}

func TestDegrade_WithoutCurrent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")

	result, err := open(t, env).Degrade(false)
	require.NoError(t, err)
	assert.Equal(t, "1.0", result.Version)
	testutil.AssertCurrent(t, env, "1.0")
}

func TestList(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0b1", "1.0", "0.9")
	env.SetCurrent("1.0b1")

	result, err := open(t, env).List()
	require.NoError(t, err)
	assert.Equal(t, env.Parent, result.Parent)
	assert.Equal(t, []types.VersionInfo{
		{Version: "0.9", Directory: "0.9"},
		{Version: "1.0b1", Directory: "1.0b1", Current: true},
		{Version: "1.0", Directory: "1.0", Head: true},
	}, result.Versions)
}

func TestList_Empty(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	result, err := open(t, env).List()
	require.NoError(t, err)
	assert.Empty(t, result.Versions)
	assert.NotNil(t, result.Versions)
}

func TestPaths(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	cfg, err := config.Defaults()
	require.NoError(t, err)
	cfg.Releases.Dir = "releases"
	cfg.Link.Name = "live"

	j, err := jungle.New(env.FS, env.Parent, cfg)
	require.NoError(t, err)
	assert.Equal(t, env.Parent, j.Parent())
	assert.Equal(t, env.Path("releases"), j.ReleasesRoot())
	assert.Equal(t, env.Path("live"), j.LinkPath())
}
