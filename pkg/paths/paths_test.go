package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveParent(t *testing.T) {
	t.Run("empty uses working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		got, err := ResolveParent("")
		require.NoError(t, err)
		assert.Equal(t, wd, got)
	})

	t.Run("relative becomes absolute", func(t *testing.T) {
		got, err := ResolveParent("releases/../app")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "app", filepath.Base(got))
	})

	t.Run("absolute is cleaned", func(t *testing.T) {
		got, err := ResolveParent("/srv/app/")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean("/srv/app"), got)
	})

	t.Run("home is expanded", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		got, err := ResolveParent("~/app")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "app"), got)
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/x", filepath.Join(home, "x")},
		{"~other/x", "~other/x"},
		{"/abs", "/abs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), "ExpandHome(%q)", tt.in)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		t.Setenv(EnvJungleConfigDir, "/etc/jungle")
		assert.Equal(t, "/etc/jungle", ConfigDir())
		assert.Equal(t, "/etc/jungle/config.toml", UserConfigPath())
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(EnvJungleConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgconf")
		assert.Equal(t, "/tmp/xdgconf/jungle", ConfigDir())
	})
}

func TestParentConfigPath(t *testing.T) {
	assert.Equal(t, "/srv/app/.jungle.toml", ParentConfigPath("/srv/app"))
}
