package ecs

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/MultiCoreECS/SmolNBody/types"
)

// snapshotter is the non-generic face of a Store used by the state snapshot.
type snapshotter interface {
	Name() string
	encodeFor(id types.EntityID) (json.RawMessage, bool, error)
}

// World aggregates the entity manager, every registered component store and
// the named singleton resources. The scheduler holds a non-owning reference
// to it for the lifetime of a run; components and resources are never shared
// outside the world.
type World struct {
	Logger Logger

	manager    *Manager
	storeNames []string
	stores     map[string]snapshotter
	resources  map[string]any
}

func NewWorld(logger Logger) *World {
	return &World{
		Logger:    logger,
		manager:   NewManager(),
		stores:    make(map[string]snapshotter),
		resources: make(map[string]any),
	}
}

// Create allocates a new entity in the world.
func (w *World) Create() types.EntityID {
	return w.manager.Create()
}

// Entities returns the live entity set in creation order.
func (w *World) Entities() []types.EntityID {
	return w.manager.Entities()
}

func (w *World) EntityCount() int {
	return w.manager.Len()
}

func (w *World) ComponentNames() []string {
	return w.storeNames
}

// RegisterComponent adds a component store for T under the given name.
// Registration happens once at startup, before any stage runs.
func RegisterComponent[T any](w *World, name string) (*Store[T], error) {
	if _, exists := w.stores[name]; exists {
		return nil, eris.Errorf("component %q is already registered", name)
	}
	store := NewStore[T](name)
	w.stores[name] = store
	w.storeNames = append(w.storeNames, name)
	return store, nil
}

// GetComponent looks up the store registered under name.
func GetComponent[T any](w *World, name string) (*Store[T], error) {
	raw, exists := w.stores[name]
	if !exists {
		return nil, eris.Errorf("component %q is not registered", name)
	}
	store, ok := raw.(*Store[T])
	if !ok {
		return nil, eris.Errorf("component %q is registered with a different type", name)
	}
	return store, nil
}

// RegisterResource adds a named singleton resource holding initial.
func RegisterResource[T any](w *World, name string, initial T) (*Resource[T], error) {
	if _, exists := w.resources[name]; exists {
		return nil, eris.Errorf("resource %q is already registered", name)
	}
	res := NewResource(name, initial)
	w.resources[name] = res
	return res, nil
}

// GetResource looks up the resource registered under name.
func GetResource[T any](w *World, name string) (*Resource[T], error) {
	raw, exists := w.resources[name]
	if !exists {
		return nil, eris.Errorf("resource %q is not registered", name)
	}
	res, ok := raw.(*Resource[T])
	if !ok {
		return nil, eris.Errorf("resource %q is registered with a different type", name)
	}
	return res, nil
}

// State snapshots every entity's component values, in entity ID order. The
// snapshot takes shared locks store by store, so it is safe to call between
// ticks (or concurrently with read-only stages).
func (w *World) State() (types.EntityStateResponse, error) {
	resp := make(types.EntityStateResponse, 0, w.manager.Len())
	for _, id := range w.manager.Entities() {
		comps := make(map[string]json.RawMessage)
		for _, name := range w.storeNames {
			bz, ok, err := w.stores[name].encodeFor(id)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to snapshot component %q", name)
			}
			if ok {
				comps[name] = bz
			}
		}
		resp = append(resp, types.EntityStateElement{ID: id, Components: comps})
	}
	return resp, nil
}
