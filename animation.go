package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates the current state of a Transform over simulation
// time. Create one via TweenTranslation, TweenScale or TweenRotation and
// call Update(dt) once per simulation step, before the transform is ticked,
// or hand it to Scene.AddTween.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	values [3]float32
	apply  func(values [3]float32)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the new values to the
// target transform.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(g.values)
	g.Done = allDone
}

// TweenTranslation creates a TweenGroup that moves t's current translation
// to the target over duration seconds using the easing function.
func TweenTranslation(t *Transform, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.CurrentTranslation()
	g := newVec3Tween(from, to, duration, fn)
	g.apply = func(v [3]float32) {
		t.SetCurrentTranslation(v[0], v[1], v[2])
	}
	return g
}

// TweenScale creates a TweenGroup that animates t's current scale to the
// target over duration seconds using the easing function.
func TweenScale(t *Transform, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.CurrentScale()
	g := newVec3Tween(from, to, duration, fn)
	g.apply = func(v [3]float32) {
		t.SetCurrentScale(v[0], v[1], v[2])
	}
	return g
}

// TweenRotation creates a TweenGroup that rotates t's current rotation to
// the target along the shortest arc. The easing function shapes the
// interpolation parameter.
func TweenRotation(t *Transform, to mgl32.Quat, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.CurrentRotation()
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(0, 1, duration, fn)
	g.apply = func(v [3]float32) {
		t.currentRotation = slerp(from, to, v[0])
	}
	return g
}

func newVec3Tween(from, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	for i := range 3 {
		g.tweens[i] = gween.New(from[i], to[i], duration, fn)
	}
	return g
}
