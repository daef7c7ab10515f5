package testutil

import (
	"os"
	"testing"
)

// AssertCurrent checks the raw target of the current link
func AssertCurrent(t *testing.T, env *TestEnvironment, want string) {
	t.Helper()
	if got := env.CurrentTarget(); got != want {
		t.Errorf("current link target = %q, want %q", got, want)
	}
}

// AssertDirExists checks that a directory exists at path
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

// AssertNotExists checks that nothing exists at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("unexpected error checking %s: %v", path, err)
	}
}
