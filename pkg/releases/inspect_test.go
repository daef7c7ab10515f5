package releases_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/jungle/pkg/releases"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	fs, mem := setup(t, []string{"1.0/bin", "1.0/lib/deep"})
	require.NoError(t, afero.WriteFile(mem, root+"/1.0/bin/app", make([]byte, 1000), 0755))
	require.NoError(t, afero.WriteFile(mem, root+"/1.0/lib/deep/a.so", make([]byte, 24), 0644))
	require.NoError(t, afero.WriteFile(mem, root+"/1.0/VERSION", []byte("1.0\n"), 0644))

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, mem.Chtimes(root+"/1.0", stamp, stamp))

	set, err := releases.List(fs, root)
	require.NoError(t, err)
	require.Len(t, set, 1)

	t.Run("without size", func(t *testing.T) {
		info, err := releases.Inspect(fs, set[0], false)
		require.NoError(t, err)
		assert.True(t, info.ModTime.Equal(stamp))
		assert.Zero(t, info.Size)
		assert.Equal(t, "1.0", info.Name)
	})

	t.Run("with size", func(t *testing.T) {
		info, err := releases.Inspect(fs, set[0], true)
		require.NoError(t, err)
		assert.Equal(t, int64(1028), info.Size)
	})
}

func TestDirSize_Empty(t *testing.T) {
	fs, _ := setup(t, []string{"2.0"})
	size, err := releases.DirSize(fs, root+"/2.0")
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestDirSize_Missing(t *testing.T) {
	fs, _ := setup(t, nil)
	_, err := releases.DirSize(fs, root+"/9.9")
	assert.Error(t, err)
}
