package arbor

import "github.com/go-gl/mathgl/mgl32"

// Box is a local-space axis-aligned bounding box given by its min and max
// corners. The zero Box is empty: both corners sit at the origin.
type Box struct {
	Min, Max mgl32.Vec3
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]mgl32.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{lo[0], hi[1], lo[2]},
		{lo[0], lo[1], hi[2]},
		{hi[0], hi[1], lo[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], hi[1], hi[2]},
		{hi[0], hi[1], hi[2]},
	}
}

// Order selects the render-order strategy of a walk.
type Order uint8

const (
	OrderMaterial Order = iota // batched by material key, ascending
	OrderPosition              // back-to-front by projected depth
)

// String returns the name of the order.
func (o Order) String() string {
	switch o {
	case OrderMaterial:
		return "material"
	case OrderPosition:
		return "position"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of scene event.
type EventType uint8

const (
	EventTick EventType = iota // fires after every transform in the scene was ticked
	EventWalk                  // fires after a visibility walk from the scene root
)

// SceneEvent carries scene data for the ECS bridge.
type SceneEvent struct {
	Type EventType
	// Tick is the number of simulation steps completed so far.
	Tick uint64
	// Walk fields (valid for EventWalk)
	Order   Order
	Delta   float32
	Visible int
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, scene events are forwarded to it.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}
