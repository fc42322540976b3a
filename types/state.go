package types

import "encoding/json"

// EntityStateElement is one entity's view in a world state snapshot. The
// component map is keyed by component name with the raw encoded value.
type EntityStateElement struct {
	ID         EntityID                   `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
}

// EntityStateResponse is the full snapshot, ordered by entity ID.
type EntityStateResponse []EntityStateElement
