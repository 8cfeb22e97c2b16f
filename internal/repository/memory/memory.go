// Package memory provides in-memory implementations of the repository
// interfaces. Records live in a primary map keyed by id, with secondary
// maps indexing the uniqueness-constrained fields. Every operation runs
// under the repository's mutex, so no caller ever observes a half-updated
// index. Nothing is persisted; all state is lost on process exit.
package memory

import "github.com/google/uuid"

// IDGenerator produces ids for newly created records.
type IDGenerator func() uuid.UUID

// Option configures a repository at construction time.
type Option func(*settings)

type settings struct {
	newID IDGenerator
}

func newSettings(opts []Option) settings {
	s := settings{newID: uuid.New}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithIDGenerator replaces the default uuid.New id source. Tests use this
// to create records with deterministic ids.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *settings) {
		s.newID = gen
	}
}
