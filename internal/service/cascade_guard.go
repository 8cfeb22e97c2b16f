package service

import "sync"

// CascadeGuard serializes piu creation against user cascade deletes. The
// owner-existence check and the piu insert span two repositories with
// independent mutexes, so on their own they are not atomic: a create could
// pass its owner check, lose the CPU while a cascade delete runs to
// completion, and then insert a piu referencing a dead user. Creates hold
// the guard shared, a cascade holds it exclusively; while a delete is in
// flight no check-then-insert can interleave with it.
//
// Reads are untouched: the guard only covers the one cross-store write
// sequence that can manufacture an orphan.
type CascadeGuard struct {
	mu sync.RWMutex
}

// NewCascadeGuard creates a guard to be shared by the user and piu
// services operating on the same store pair.
func NewCascadeGuard() *CascadeGuard {
	return &CascadeGuard{}
}
