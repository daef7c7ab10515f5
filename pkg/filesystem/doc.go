// Package filesystem provides filesystem implementations for jungle.
//
// This package contains implementations of the types.FS interface on top
// of afero: the OS filesystem for production and any afero.Fs (usually a
// MemMapFs) for tests.
package filesystem
