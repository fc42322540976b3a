package ecs

import (
	"encoding/json"
	"sync"

	"github.com/MultiCoreECS/SmolNBody/codec"
	"github.com/MultiCoreECS/SmolNBody/types"
)

// Store holds at most one value of T per entity; absence is a valid state.
// All access goes through scoped handles: a read handle permits concurrent
// shared lookups from any number of stages or parallel tasks, a write handle
// permits exclusive mutation and excludes readers and writers of the same
// store for as long as it is held. Handles are acquired at stage entry and
// must be released on every exit path, typically with defer.
type Store[T any] struct {
	name string
	mu   sync.RWMutex
	data map[types.EntityID]T
}

func NewStore[T any](name string) *Store[T] {
	return &Store[T]{
		name: name,
		data: make(map[types.EntityID]T),
	}
}

func (s *Store[T]) Name() string {
	return s.name
}

// Reader acquires the shared lock and returns a read handle over the store.
func (s *Store[T]) Reader() *ReadHandle[T] {
	s.mu.RLock()
	return &ReadHandle[T]{store: s}
}

// Writer acquires the exclusive lock and returns a write handle over the
// store.
func (s *Store[T]) Writer() *WriteHandle[T] {
	s.mu.Lock()
	return &WriteHandle[T]{store: s}
}

// encodeFor encodes the component value attached to id, if any. Used by the
// world state snapshot; takes its own shared lock.
func (s *Store[T]) encodeFor(id types.EntityID) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[id]
	if !ok {
		return nil, false, nil
	}
	bz, err := codec.Encode(value)
	if err != nil {
		return nil, false, err
	}
	return bz, true, nil
}

// ReadHandle is a scoped shared guard over a Store.
type ReadHandle[T any] struct {
	store *Store[T]
}

func (h *ReadHandle[T]) Get(id types.EntityID) (T, bool) {
	value, ok := h.store.data[id]
	return value, ok
}

func (h *ReadHandle[T]) Has(id types.EntityID) bool {
	_, ok := h.store.data[id]
	return ok
}

func (h *ReadHandle[T]) Len() int {
	return len(h.store.data)
}

func (h *ReadHandle[T]) Release() {
	h.store.mu.RUnlock()
}

// WriteHandle is a scoped exclusive guard over a Store.
type WriteHandle[T any] struct {
	store *Store[T]
}

// Set associates value with id, overwriting any prior value. Insertion order
// across entities is irrelevant.
func (h *WriteHandle[T]) Set(id types.EntityID, value T) {
	h.store.data[id] = value
}

func (h *WriteHandle[T]) Get(id types.EntityID) (T, bool) {
	value, ok := h.store.data[id]
	return value, ok
}

func (h *WriteHandle[T]) Has(id types.EntityID) bool {
	_, ok := h.store.data[id]
	return ok
}

func (h *WriteHandle[T]) Release() {
	h.store.mu.Unlock()
}

// Haser is the piece of a handle the Join helper needs.
type Haser interface {
	Has(id types.EntityID) bool
}

// Join filters ents down to the entities, in the given order, that have a
// value in every store the handles guard. Callers keep the handles open for
// the lookups that follow.
func Join(ents []types.EntityID, handles ...Haser) []types.EntityID {
	joined := make([]types.EntityID, 0, len(ents))
outer:
	for _, id := range ents {
		for _, h := range handles {
			if !h.Has(id) {
				continue outer
			}
		}
		joined = append(joined, id)
	}
	return joined
}
