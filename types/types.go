package types

// EntityID is the unique identifier for an entity. An entity has no payload
// of its own; it exists to group component values across stores.
type EntityID uint64

// Vec2 is a plain 2D value used by the spatial components. Methods return
// copies; components are updated by writing the whole value back to a store.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}
