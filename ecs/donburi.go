package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SceneEventType is the Donburi event type for arbor scene events.
var SceneEventType = events.NewEventType[arbor.SceneEvent]()

// NodeData links an entity to a scene node.
type NodeData struct {
	Node *arbor.Node
}

// NodeComponent is the Donburi component holding an entity's scene node.
var NodeComponent = donburi.NewComponentType[NodeData]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// AddNode creates an entity carrying n.
func AddNode(world donburi.World, n *arbor.Node) donburi.Entity {
	e := world.Create(NodeComponent)
	NodeComponent.SetValue(world.Entry(e), NodeData{Node: n})
	return e
}

// Tick snapshots the transform of every entity's node. Run it once per
// simulation step, before systems mutate transforms for the new step.
func Tick(world donburi.World) {
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		if n := NodeComponent.Get(entry).Node; n != nil {
			n.Transform().Tick()
		}
	})
}

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arbor.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event arbor.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
