package ecs

import "sync"

// Resource is a named singleton value owned by the world, guarded with the
// same shared/exclusive discipline as a component store: one exclusive
// writer or any number of concurrent readers.
type Resource[T any] struct {
	name  string
	mu    sync.RWMutex
	value T
}

func NewResource[T any](name string, initial T) *Resource[T] {
	return &Resource[T]{
		name:  name,
		value: initial,
	}
}

func (r *Resource[T]) Name() string {
	return r.name
}

// Read returns a copy of the value under the shared lock, plus the release
// func for the lock. Release on every exit path.
func (r *Resource[T]) Read() (T, func()) {
	r.mu.RLock()
	return r.value, r.mu.RUnlock
}

// Write returns a pointer to the value under the exclusive lock, plus the
// release func. The pointer must not outlive the release.
func (r *Resource[T]) Write() (*T, func()) {
	r.mu.Lock()
	return &r.value, r.mu.Unlock
}
