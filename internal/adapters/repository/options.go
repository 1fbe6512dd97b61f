// Package repository defines the activity registry interface and errors.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacityEnforcement makes Signup reject activities that are full.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *MemoryStore) {
		s.enforceCapacity = enabled
	}
}
