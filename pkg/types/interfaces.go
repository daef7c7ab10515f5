package types

import (
	"io/fs"
)

// FS is the filesystem interface required for jungle operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	RemoveAll(path string) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// Other operations
	Remove(name string) error

	// Rename must replace newpath atomically when it already exists. This is
	// what makes switching the current link safe.
	Rename(oldpath, newpath string) error
}
