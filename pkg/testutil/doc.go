// Package testutil provides utilities for testing jungle components.
//
// Key components:
//   - TestEnvironment: a jungle parent directory with release directories
//     and a current link, either on the real filesystem in a temp
//     directory (EnvIsolated) or in an afero MemMapFs (EnvMemoryOnly)
//   - FaultFS: a types.FS wrapper that injects errors and hooks per
//     operation, used to simulate crashes and concurrent invocations
//
// Usage guidelines:
//   - Anything touching the current link needs EnvIsolated, afero's
//     in-memory filesystem has no symlinks
//   - Release scanning and prune selection tests should use EnvMemoryOnly
//   - Each test should be completely isolated with no shared state
package testutil
