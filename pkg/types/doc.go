// Package types holds the interfaces and result structs shared by jungle's
// packages.
//
// The filesystem interface lives here so that the release scanner, the
// current link and the lifecycle engine can be driven by the real OS
// filesystem in production and by afero-backed or fault-injecting
// filesystems in tests. The result structs are what pkg/commands returns
// to the CLI layer; they carry canonical version strings rather than
// parsed values so the CLI can render them without importing the engine.
package types
