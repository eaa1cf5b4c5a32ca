package arbor

import "time"

// Scene is the top-level object that owns the node tree, the camera, the
// simulation clock and the walk buffers.
type Scene struct {
	// ScreenshotDir is the directory where Screenshot writes PNG files.
	ScreenshotDir string

	root   *Node
	camera *Camera
	clock  *Clock
	store  EntityStore
	debug  bool

	updateFunc func() error
	tweens     []*TweenGroup
	script     *ScriptRunner

	screenshotQueue []string

	walker walker
}

// NewScene creates a new scene with a pre-created root node whose
// reference is "root", ticking at tps simulation steps per second.
func NewScene(tps int) *Scene {
	root := NewNode("root")
	root.Name = "root"
	return &Scene{
		ScreenshotDir: "screenshots",
		root:          root,
		camera:        NewCamera(),
		clock:         NewClock(tps),
		walker:        walker{nodes: make([]*Node, 0, defaultWalkCap)},
	}
}

const defaultWalkCap = 256

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Clock returns the scene's simulation clock.
func (s *Scene) Clock() *Clock {
	return s.clock
}

// SetUpdateFunc sets the host callback run once per Update, after the
// transforms were snapshotted and before tweens advance.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddTween registers a tween advanced once per Update. Finished tweens are
// dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// Update runs one simulation step. Every transform is ticked first, which
// closes the previous step: its mutations become the "previous" state that
// rendering interpolates from. Then the update callback and the tweens
// mutate the new current state, and the clock is ticked. An attached
// ScriptRunner plays its next step right before the update callback.
// If the update callback fails, tweens and clock are not advanced and the
// error is returned.
func (s *Scene) Update() error {
	s.Tick()

	if s.script != nil {
		s.script.step(s)
	}
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	dt := float32(s.clock.Step().Seconds())
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live

	s.clock.Tick()
	if s.store != nil {
		s.store.EmitEvent(SceneEvent{Type: EventTick, Tick: s.clock.Ticks()})
	}
	return nil
}

// Tick snapshots every transform in the tree.
func (s *Scene) Tick() {
	s.root.ForEach(func(n *Node) {
		n.transform.Tick()
	})
}

// Visible walks the tree from the root with the scene camera and returns
// the references of the visible nodes in the given order.
func (s *Scene) Visible(order Order, delta float32) []any {
	return references(s.VisibleNodes(order, delta))
}

// VisibleNodes is like Visible but returns the nodes themselves. The
// returned slice is reused by the next call and MUST NOT be retained.
func (s *Scene) VisibleNodes(order Order, delta float32) []*Node {
	w := &s.walker
	w.reset(s.camera, delta)
	w.timed = s.debug

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	switch order {
	case OrderPosition:
		w.walkByPosition(s.root)
	default:
		w.walkByMaterial(s.root)
	}

	if s.debug {
		s.debugLog(debugStats{
			order:        order,
			walkTime:     time.Since(t0),
			sortTime:     w.sortTime,
			nodeCount:    countNodes(s.root),
			visibleCount: len(w.nodes),
			batchCount:   countBatches(w.nodes),
			projections:  w.projections,
		})
	}
	if s.store != nil {
		s.store.EmitEvent(SceneEvent{
			Type:    EventWalk,
			Tick:    s.clock.Ticks(),
			Order:   order,
			Delta:   delta,
			Visible: len(w.nodes),
		})
	}
	return w.nodes
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, cyclic
// reparenting panics, tree depth and child count warnings are printed, and
// per-walk timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
