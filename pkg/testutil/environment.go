// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Build jungle parent directories for tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/jungle/pkg/filesystem"
	"github.com/arthur-debert/jungle/pkg/types"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a jungle parent directory plus the filesystem it lives on
type TestEnvironment struct {
	// Parent is the jungle parent directory
	Parent string
	// HomeDir is an isolated HOME, also the base of the XDG directories
	HomeDir string

	FS types.FS
	// Mem is the underlying afero filesystem, nil for EnvIsolated
	Mem afero.Fs

	Type EnvType

	t *testing.T
}

// VersionConfig describes the content of a release directory
type VersionConfig struct {
	// Files maps relative paths to content
	Files map[string]string
	// ModTime, when set, becomes the directory's modification time
	ModTime time.Time
}

// NewTestEnvironment creates a new test environment with an empty parent
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Parent = "/virtual/jungle"
		env.HomeDir = "/virtual/home"
		env.FS, env.Mem = filesystem.NewMemory()
		env.must(env.Mem.MkdirAll(env.Parent, 0755))
	case EnvIsolated:
		tempDir := t.TempDir()
		// Resolve symlinked temp dirs (macOS /var) so link targets compare equal
		if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
			tempDir = resolved
		}
		env.Parent = filepath.Join(tempDir, "jungle")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = filesystem.NewOS()
		env.must(os.MkdirAll(env.Parent, 0755))
		env.must(os.MkdirAll(env.HomeDir, 0755))
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))

	return env
}

// Path joins elements onto the parent directory
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.Parent}, elem...)...)
}

// AddVersions creates empty release directories directly under the parent
func (env *TestEnvironment) AddVersions(names ...string) *TestEnvironment {
	env.t.Helper()
	for _, name := range names {
		env.AddVersion(name, VersionConfig{})
	}
	return env
}

// AddVersion creates a release directory (name may contain a releases
// subdirectory, e.g. "releases/1.0")
func (env *TestEnvironment) AddVersion(name string, config VersionConfig) *TestEnvironment {
	env.t.Helper()

	dir := env.Path(name)
	env.mkdirAll(dir)
	for rel, content := range config.Files {
		path := filepath.Join(dir, rel)
		env.mkdirAll(filepath.Dir(path))
		env.writeFile(path, content)
	}
	if !config.ModTime.IsZero() {
		env.chtimes(dir, config.ModTime)
	}
	return env
}

// WriteFile writes a file relative to the parent
func (env *TestEnvironment) WriteFile(rel, content string) {
	env.t.Helper()
	path := env.Path(rel)
	env.mkdirAll(filepath.Dir(path))
	env.writeFile(path, content)
}

// SetCurrent points the current link at target with a plain symlink call,
// bypassing jungle. Only for EnvIsolated.
func (env *TestEnvironment) SetCurrent(target string) {
	env.t.Helper()
	env.requireIsolated("SetCurrent")
	link := env.Path("current")
	if _, err := os.Lstat(link); err == nil {
		env.must(os.Remove(link))
	}
	env.must(os.Symlink(target, link))
}

// CurrentTarget returns the raw content of the current link, "" if absent
func (env *TestEnvironment) CurrentTarget() string {
	env.t.Helper()
	env.requireIsolated("CurrentTarget")
	target, err := os.Readlink(env.Path("current"))
	if err != nil {
		return ""
	}
	return target
}

// Exists reports whether something exists at rel (links are not followed)
func (env *TestEnvironment) Exists(rel string) bool {
	env.t.Helper()
	_, err := env.FS.Lstat(env.Path(rel))
	return err == nil
}

func (env *TestEnvironment) requireIsolated(what string) {
	if env.Type != EnvIsolated {
		env.t.Fatalf("%s needs an EnvIsolated environment", what)
	}
}

func (env *TestEnvironment) mkdirAll(path string) {
	if env.Mem != nil {
		env.must(env.Mem.MkdirAll(path, 0755))
		return
	}
	env.must(os.MkdirAll(path, 0755))
}

func (env *TestEnvironment) writeFile(path, content string) {
	if env.Mem != nil {
		env.must(afero.WriteFile(env.Mem, path, []byte(content), 0644))
		return
	}
	env.must(os.WriteFile(path, []byte(content), 0644))
}

func (env *TestEnvironment) chtimes(path string, ts time.Time) {
	if env.Mem != nil {
		env.must(env.Mem.Chtimes(path, ts, ts))
		return
	}
	env.must(os.Chtimes(path, ts, ts))
}

func (env *TestEnvironment) must(err error) {
	env.t.Helper()
	if err != nil {
		env.t.Fatalf("test environment setup failed: %v", err)
	}
}
