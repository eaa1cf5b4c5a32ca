// Package arbor is the scene-graph core of a 3D renderer: a hierarchy of
// nodes with tick-interpolated transforms, frustum culling, and the two
// render orders a renderer needs every frame.
//
// Arbor does not draw, load assets or manage GPU resources. Nodes carry an
// opaque host reference, a material key made of numeric shader and texture
// handles, and a local bounding box; walks hand back the references of the
// visible nodes in draw order.
//
// # Quick start
//
//	scene := arbor.NewScene(30)
//	scene.Camera().LookAt(eye, target, up)
//	scene.Camera().SetPerspective(fovy, aspect, 0.1, 100)
//
//	crate := arbor.NewNode(myCrate)
//	crate.SetMax(1, 1, 1)
//	crate.Material().SetShader(2)
//	crate.Material().SetTextures(7, 3)
//	crate.SetParent(scene.Root())
//
//	// each simulation step
//	scene.Update()
//
//	// each frame
//	opaque := scene.Visible(arbor.OrderMaterial, scene.Clock().Delta())
//	blended := scene.Visible(arbor.OrderPosition, scene.Clock().Delta())
//
// # Interpolation
//
// A [Transform] keeps the state of the current simulation step and a
// snapshot of the previous one, taken by [Transform.Tick]. Rendering asks
// for [Transform.Local] or [Transform.Global] at a delta in [0, 1]: 0 is the
// previous state, 1 the current one. [Clock] turns wall time into that
// delta.
//
// # Render orders
//
// [Node.WalkByMaterial] groups visible nodes by [Material] so draws sharing
// render state are adjacent. [Node.WalkByPosition] orders them back to front
// by projected depth for alpha blending. Both sorts are stable and only run
// when the walk starts at a root node.
//
// # Hosting
//
// [Run] drives a scene with [Ebitengine] and draws bounding-box wireframes,
// which is handy for debugging culling. Scenes can be described in YAML
// ([LoadSceneFile]) and hot-reloaded with a [Watcher]. Transform tweens use
// [gween]; the ecs submodule bridges scenes to [Donburi].
//
// For automated visual checks, a [ScriptRunner] plays scripted transform
// changes and [Scene.Screenshot] captures, one step per tick, and
// [RunConfig.ExitWhenScriptDone] ends the run when the script finishes.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
