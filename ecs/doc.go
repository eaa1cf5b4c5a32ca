// Package ecs provides ECS adapters for arbor scenes.
//
// [NewDonburiStore] bridges scene events (ticks, visibility walks) into a
// [Donburi] world as typed events; subscribe to [SceneEventType] in your
// systems to receive them. [NodeComponent] attaches an arbor node to an
// entity, and [Tick] snapshots the transforms of every such entity, for
// worlds that drive node state from systems rather than from a Scene.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
