// pkg/link/link_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dir), FaultFS
// PURPOSE: Test reading and atomically switching the current link

package link_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/arthur-debert/jungle/pkg/link"
	"github.com/arthur-debert/jungle/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0b1")
	env.SetCurrent("2.0b1")

	target, err := link.New(env.FS, env.Parent, link.Options{}).Read()
	require.NoError(t, err)
	assert.Equal(t, "2.0b1", target.Name)
	assert.Equal(t, "2.0b1", target.Version.String())
	assert.Equal(t, env.Path("2.0b1"), target.Path)
	assert.Equal(t, "2.0b1", target.Raw)
}

func TestRead_AbsoluteTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0")
	env.SetCurrent(env.Path("1.0"))

	target, err := link.New(env.FS, env.Parent, link.Options{}).Read()
	require.NoError(t, err)
	assert.Equal(t, "1.0", target.Name)
	assert.Equal(t, env.Path("1.0"), target.Path)
}

func TestRead_NoCurrent(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(env *testutil.TestEnvironment)
		reason string
	}{
		{
			name:   "missing",
			setup:  func(env *testutil.TestEnvironment) {},
			reason: link.ReasonMissing,
		},
		{
			name: "regular directory",
			setup: func(env *testutil.TestEnvironment) {
				require.NoError(t, os.Mkdir(env.Path("current"), 0755))
			},
			reason: link.ReasonNotSymlink,
		},
		{
			name:   "broken",
			setup:  func(env *testutil.TestEnvironment) { env.SetCurrent("9.9") },
			reason: link.ReasonBroken,
		},
		{
			name: "points at a file",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("2.0", "not a dir")
				env.SetCurrent("2.0")
			},
			reason: link.ReasonNotDirectory,
		},
		{
			name: "unparseable target",
			setup: func(env *testutil.TestEnvironment) {
				env.AddVersions("latest")
				env.SetCurrent("latest")
			},
			reason: link.ReasonUnparseable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			env.AddVersions("1.0")
			tt.setup(env)

			_, err := link.New(env.FS, env.Parent, link.Options{}).Read()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrNoCurrent))
			assert.Equal(t, tt.reason, errors.GetErrorDetails(err)["reason"])
		})
	}
}

func TestExists(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	l := link.New(env.FS, env.Parent, link.Options{})

	exists, err := l.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	// A broken link still occupies the path
	env.SetCurrent("missing")
	exists, err = l.Exists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAtomicSet(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	l := link.New(env.FS, env.Parent, link.Options{})

	require.NoError(t, l.AtomicSet(env.Path("1.0")))
	testutil.AssertCurrent(t, env, "1.0")

	require.NoError(t, l.AtomicSet(env.Path("2.0")))
	testutil.AssertCurrent(t, env, "2.0")
	testutil.AssertNotExists(t, l.TempPath())

	target, err := l.Read()
	require.NoError(t, err)
	assert.Equal(t, "2.0", target.Name)
}

func TestAtomicSet_ReleasesSubdir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("releases/1.0")
	l := link.New(env.FS, env.Parent, link.Options{})

	require.NoError(t, l.AtomicSet(env.Path("releases", "1.0")))
	testutil.AssertCurrent(t, env, filepath.Join("releases", "1.0"))

	target, err := l.Read()
	require.NoError(t, err)
	assert.Equal(t, "1.0", target.Name)
}

func TestAtomicSet_Absolute(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0")
	l := link.New(env.FS, env.Parent, link.Options{Absolute: true})

	require.NoError(t, l.AtomicSet(env.Path("1.0")))
	testutil.AssertCurrent(t, env, env.Path("1.0"))
}

func TestAtomicSet_CustomName(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0")
	l := link.New(env.FS, env.Parent, link.Options{Name: "live", TempSuffix: ".tmp"})

	assert.Equal(t, env.Path("live"), l.Path())
	assert.Equal(t, env.Path("live.tmp."), l.TempPath()[:len(env.Path("live.tmp."))])

	require.NoError(t, l.AtomicSet(env.Path("1.0")))
	target, err := os.Readlink(env.Path("live"))
	require.NoError(t, err)
	assert.Equal(t, "1.0", target)
}

func TestAtomicSet_ReplacesStaleTemp(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	l := link.New(env.FS, env.Parent, link.Options{})

	// Left over from a run that crashed between symlink and rename
	require.NoError(t, os.Symlink("1.0", l.TempPath()))

	require.NoError(t, l.AtomicSet(env.Path("2.0")))
	testutil.AssertCurrent(t, env, "2.0")
	testutil.AssertNotExists(t, l.TempPath())
}

func TestAtomicSet_SweepsOldForeignTemps(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	l := link.New(env.FS, env.Parent, link.Options{StaleAfter: time.Millisecond})

	// Left by another process that died before renaming
	crashed := env.Path("current.new.999999")
	require.NoError(t, os.Symlink("1.0", crashed))
	// Same prefix but not a temporary link
	env.WriteFile("current.new.notes", "keep me")
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, l.AtomicSet(env.Path("2.0")))
	testutil.AssertCurrent(t, env, "2.0")
	testutil.AssertNotExists(t, crashed)
	assert.True(t, env.Exists("current.new.notes"))
}

func TestAtomicSet_KeepsFreshForeignTemps(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	l := link.New(env.FS, env.Parent, link.Options{})

	// May belong to a switch running right now
	racing := env.Path("current.new.999999")
	require.NoError(t, os.Symlink("1.0", racing))

	require.NoError(t, l.AtomicSet(env.Path("2.0")))
	testutil.AssertCurrent(t, env, "2.0")
	_, err := os.Lstat(racing)
	assert.NoError(t, err)
}

func TestAtomicSet_RenameFailureKeepsCurrent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	env.SetCurrent("1.0")

	boom := stderrors.New("simulated crash")
	ffs := testutil.NewFaultFS(env.FS)
	l := link.New(ffs, env.Parent, link.Options{})
	ffs.FailOn(testutil.OpRename, l.TempPath(), boom)

	err := l.AtomicSet(env.Path("2.0"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	assert.ErrorIs(t, err, boom)

	// The old link is still in place and valid
	testutil.AssertCurrent(t, env, "1.0")
	target, err := link.New(env.FS, env.Parent, link.Options{}).Read()
	require.NoError(t, err)
	assert.Equal(t, "1.0", target.Name)
	testutil.AssertNotExists(t, l.TempPath())
}

func TestAtomicSet_SymlinkFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddVersions("1.0", "2.0")
	env.SetCurrent("1.0")

	ffs := testutil.NewFaultFS(env.FS)
	l := link.New(ffs, env.Parent, link.Options{})
	ffs.FailOn(testutil.OpSymlink, "", os.ErrPermission)

	err := l.AtomicSet(env.Path("2.0"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	testutil.AssertCurrent(t, env, "1.0")

	for _, call := range ffs.Calls() {
		assert.NotContains(t, call, testutil.OpRename)
	}
}

func TestLinkValue(t *testing.T) {
	l := link.New(nil, "/srv/app", link.Options{})
	assert.Equal(t, "2.0", l.LinkValue("/srv/app/2.0"))
	assert.Equal(t, "releases/2.0", l.LinkValue("/srv/app/releases/2.0"))
	assert.Equal(t, "/opt/2.0", l.LinkValue("/opt/2.0"))

	abs := link.New(nil, "/srv/app", link.Options{Absolute: true})
	assert.Equal(t, "/srv/app/2.0", abs.LinkValue("/srv/app/2.0"))
}
