package testutil

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/jungle/pkg/types"
)

// Operation names understood by FaultFS
const (
	OpStat      = "Stat"
	OpReadDir   = "ReadDir"
	OpRemoveAll = "RemoveAll"
	OpSymlink   = "Symlink"
	OpReadlink  = "Readlink"
	OpLstat     = "Lstat"
	OpRemove    = "Remove"
	OpRename    = "Rename"
)

type fault struct {
	op   string
	path string // "" matches any path
	err  error
}

type hook struct {
	op   string
	path string
	fn   func()
	once bool
	done bool
}

// FaultFS wraps a types.FS, failing or intercepting chosen operations.
// Paths are matched against the first path argument of the operation.
type FaultFS struct {
	types.FS

	mu     sync.Mutex
	faults []fault
	hooks  []*hook
	calls  []string
}

// NewFaultFS wraps fs
func NewFaultFS(fs types.FS) *FaultFS {
	return &FaultFS{FS: fs}
}

// FailOn makes op on path (any path if empty) return err
func (f *FaultFS) FailOn(op, path string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, fault{op: op, path: path, err: err})
	return f
}

// BeforeOnce runs fn the first time op is called on path, before the
// operation itself. Used to simulate another process acting in between.
func (f *FaultFS) BeforeOnce(op, path string, fn func()) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, &hook{op: op, path: path, fn: fn, once: true})
	return f
}

// Calls returns "Op path" for every intercepted call, in order
func (f *FaultFS) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FaultFS) intercept(op, path string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op+" "+path)
	var run []func()
	for _, h := range f.hooks {
		if h.op == op && (h.path == "" || h.path == path) && !(h.once && h.done) {
			h.done = true
			run = append(run, h.fn)
		}
	}
	var err error
	for _, ft := range f.faults {
		if ft.op == op && (ft.path == "" || ft.path == path) {
			err = ft.err
			break
		}
	}
	f.mu.Unlock()

	for _, fn := range run {
		fn()
	}
	return err
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.intercept(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.intercept(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultFS) RemoveAll(path string) error {
	if err := f.intercept(OpRemoveAll, path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.intercept(OpSymlink, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultFS) Readlink(name string) (string, error) {
	if err := f.intercept(OpReadlink, name); err != nil {
		return "", err
	}
	return f.FS.Readlink(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.intercept(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.intercept(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.intercept(OpRename, oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

var _ types.FS = (*FaultFS)(nil)
