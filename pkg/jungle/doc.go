// Package jungle implements the version lifecycle of a symlink farm.
//
// A jungle is a parent directory holding version directories and a
// current link pointing at one of them. The Jungle type validates the
// parent once and then runs each operation against the live directory:
// the ranked version set and the current link are read afresh on every
// call, nothing is cached between operations.
//
// Mutations are either an atomic switch of the current link or the
// removal of a version directory. Removal re-reads the current link
// immediately before deleting and refuses to delete what it points at.
// Another process switching the link between that check and the removal
// can still win the race; jungle takes no locks.
package jungle
