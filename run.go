package arbor

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// RunConfig configures the window and debug renderer used by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Order selects the walk used to order the wireframes.
	Order Order
	// ClearColor fills the screen before drawing. Nil selects a dark grey.
	ClearColor color.Color
	// ShowStats prints FPS, TPS and the visible node count.
	ShowStats bool
	// Watcher, when set, rebuilds the scene from any description file it
	// reports. Build errors are logged to stderr and the old scene is kept.
	// The rebuilt scene inherits debug mode, entity store, update callback,
	// script runner and ScreenshotDir; pending tweens are dropped since they
	// target the old scene's transforms.
	Watcher *Watcher
	// ExitWhenScriptDone ends Run once the scene's ScriptRunner has played
	// every step and its screenshots were written.
	ExitWhenScriptDone bool
}

// Run opens a window and drives scene with ebiten: Update runs one
// simulation step at the scene clock's rate, Draw walks the scene at the
// interpolation delta of the current frame and renders every visible
// node's bounding box as a wireframe colored by shader. Run blocks until
// the window is closed.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.ClearColor == nil {
		cfg.ClearColor = color.RGBA{30, 30, 40, 255}
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(scene.clock.tps())

	g := &game{scene: scene, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("arbor: run: %w", err)
	}
	return nil
}

// tps returns the clock's rate in ticks per second.
func (c *Clock) tps() int {
	return int(time.Second / c.step)
}

type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	if g.cfg.Watcher != nil {
		g.reload()
	}
	if r := g.scene.script; r != nil && r.Done() {
		if err := r.Err(); err != nil {
			return err
		}
		if g.cfg.ExitWhenScriptDone && len(g.scene.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	return g.scene.Update()
}

// reload swaps in a scene rebuilt from the last changed description file.
func (g *game) reload() {
	path, ok := g.cfg.Watcher.Poll()
	if !ok {
		return
	}
	desc, err := LoadSceneFile(path)
	if err == nil {
		var s *Scene
		if s, err = desc.Build(); err == nil {
			s.SetDebugMode(g.scene.debug)
			s.SetEntityStore(g.scene.store)
			s.SetUpdateFunc(g.scene.updateFunc)
			s.ScreenshotDir = g.scene.ScreenshotDir
			s.SetScriptRunner(g.scene.script)
			g.scene = s
			ebiten.SetTPS(s.clock.tps())
		}
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] reload %s: %v\n", path, err)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)

	delta := g.scene.clock.Delta()
	nodes := g.scene.VisibleNodes(g.cfg.Order, delta)
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	for _, n := range nodes {
		drawWireBox(screen, g.scene.camera, n, delta, w, h)
	}

	if g.cfg.ShowStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nvisible: %d (%s)",
			ebiten.ActualFPS(), ebiten.ActualTPS(), len(nodes), g.cfg.Order))
	}
	g.scene.flushScreenshots(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// boxEdges lists the corner pairs of Box.Corners that form the box's edges.
var boxEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 3}, {1, 4}, {1, 5}, {2, 4},
	{2, 6}, {3, 5}, {3, 6}, {4, 7}, {5, 7}, {6, 7},
}

// shaderPalette colors wireframes by shader handle.
var shaderPalette = []color.RGBA{
	colornames.Lightskyblue,
	colornames.Orange,
	colornames.Palegreen,
	colornames.Hotpink,
	colornames.Khaki,
	colornames.Mediumpurple,
}

func shaderColor(shader int) color.RGBA {
	i := shader % len(shaderPalette)
	if i < 0 {
		i += len(shaderPalette)
	}
	return shaderPalette[i]
}

// drawWireBox strokes the edges of n's bounding box projected onto a w×h
// screen. Edges with an endpoint outside the depth range are skipped.
func drawWireBox(dst *ebiten.Image, cam *Camera, n *Node, delta, w, h float32) {
	transform := n.transform.Global(delta)
	var screen [8]mgl32.Vec3
	for i, c := range n.bounds.Corners() {
		p := cam.Project(transform.Mul4x1(c.Vec4(1)).Vec3())
		screen[i] = mgl32.Vec3{p[0] * w, (1 - p[1]) * h, p[2]}
	}
	clr := shaderColor(n.material.shader)
	for _, e := range boxEdges {
		a, b := screen[e[0]], screen[e[1]]
		if a[2] < 0 || a[2] > 1 || b[2] < 0 || b[2] > 1 {
			continue
		}
		vector.StrokeLine(dst, a[0], a[1], b[0], b[1], 1, clr, true)
	}
}
