package ecs

import (
	"sync"

	"github.com/MultiCoreECS/SmolNBody/types"
)

// Manager allocates entity identifiers and tracks the live set. Entities are
// never destroyed during a run, so the live set only grows. IDs are handed
// out sequentially and iteration over Entities is always in creation order,
// which keeps per-entity float accumulation deterministic no matter how the
// work is split across workers.
type Manager struct {
	mu       sync.Mutex
	nextID   types.EntityID
	entities []types.EntityID
}

func NewManager() *Manager {
	return &Manager{}
}

// Create allocates a new entity identifier. O(1); identifier exhaustion is
// not a practical concern at the scales this engine runs at.
func (m *Manager) Create() types.EntityID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.entities = append(m.entities, id)
	return id
}

// Entities returns the live set in creation (ID) order. The returned slice
// is shared; callers must not mutate it.
func (m *Manager) Entities() []types.EntityID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entities
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entities)
}
