package arbor

import "github.com/go-gl/mathgl/mgl32"

// Transform holds a node's local scale, rotation and translation for the
// current simulation step and for the step before it. Rendering blends the
// two by an interpolation delta, so motion stays smooth at a frame rate
// decoupled from the simulation rate.
//
// A Transform may be retained by the host independently of its Node.
type Transform struct {
	currentScale       mgl32.Vec3
	currentRotation    mgl32.Quat
	currentTranslation mgl32.Vec3

	previousScale       mgl32.Vec3
	previousRotation    mgl32.Quat
	previousTranslation mgl32.Vec3

	ticked bool

	// parent is a back-reference kept in sync by Node.SetParent.
	parent *Transform
}

// NewTransform creates an identity transform.
func NewTransform() *Transform {
	t := &Transform{}
	t.currentScale = mgl32.Vec3{1, 1, 1}
	t.currentRotation = mgl32.QuatIdent()
	t.previousScale = t.currentScale
	t.previousRotation = t.currentRotation
	return t
}

// Tick snapshots the current state as the previous state. Call it exactly
// once per simulation step, after all mutations for that step.
func (t *Transform) Tick() {
	t.previousScale = t.currentScale
	t.previousRotation = t.currentRotation
	t.previousTranslation = t.currentTranslation
	t.ticked = true
}

// Ticked reports whether Tick has been called at least once.
func (t *Transform) Ticked() bool {
	return t.ticked
}

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// Local returns the local matrix T * R * S at interpolation factor delta,
// where 0 is the previous state and 1 the current state. Until the first
// Tick the previous state is ignored.
func (t *Transform) Local(delta float32) mgl32.Mat4 {
	pS, pR, pT := t.currentScale, t.currentRotation, t.currentTranslation
	if t.ticked {
		pS, pR, pT = t.previousScale, t.previousRotation, t.previousTranslation
	}

	rotation := slerp(pR, t.currentRotation, delta)
	scale := lerpV3(t.currentScale, pS, 1-delta)
	translation := lerpV3(t.currentTranslation, pT, 1-delta)

	m := mgl32.Translate3D(translation[0], translation[1], translation[2])
	m = m.Mul4(rotation.Mat4())
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Global returns Local(delta) composed with the parent's global matrix as
// Local * ParentGlobal. The hierarchy must be acyclic.
func (t *Transform) Global(delta float32) mgl32.Mat4 {
	local := t.Local(delta)
	if t.parent == nil {
		return local
	}
	return local.Mul4(t.parent.Global(delta))
}

// LocalDeltaTransform returns Local(delta) flattened in row-major order.
func (t *Transform) LocalDeltaTransform(delta float32) [16]float32 {
	return [16]float32(t.Local(delta).Transpose())
}

// GlobalDeltaTransform returns Global(delta) flattened in row-major order.
func (t *Transform) GlobalDeltaTransform(delta float32) [16]float32 {
	return [16]float32(t.Global(delta).Transpose())
}

// --- Current state ---

// CurrentScale returns the scale of the current step.
func (t *Transform) CurrentScale() mgl32.Vec3 { return t.currentScale }

// SetCurrentScale sets the scale of the current step.
func (t *Transform) SetCurrentScale(x, y, z float32) {
	t.currentScale = mgl32.Vec3{x, y, z}
}

// CurrentRotation returns the rotation of the current step.
func (t *Transform) CurrentRotation() mgl32.Quat { return t.currentRotation }

// SetCurrentRotation sets the rotation of the current step from a
// quaternion in x, y, z, w order.
func (t *Transform) SetCurrentRotation(x, y, z, w float32) {
	t.currentRotation = mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}
}

// CurrentTranslation returns the translation of the current step.
func (t *Transform) CurrentTranslation() mgl32.Vec3 { return t.currentTranslation }

// SetCurrentTranslation sets the translation of the current step.
func (t *Transform) SetCurrentTranslation(x, y, z float32) {
	t.currentTranslation = mgl32.Vec3{x, y, z}
}

// --- Previous state ---

// PreviousScale returns the scale captured by the last Tick.
func (t *Transform) PreviousScale() mgl32.Vec3 { return t.previousScale }

// SetPreviousScale overrides the scale captured by the last Tick.
func (t *Transform) SetPreviousScale(x, y, z float32) {
	t.previousScale = mgl32.Vec3{x, y, z}
}

// PreviousRotation returns the rotation captured by the last Tick.
func (t *Transform) PreviousRotation() mgl32.Quat { return t.previousRotation }

// SetPreviousRotation overrides the rotation captured by the last Tick,
// in x, y, z, w order.
func (t *Transform) SetPreviousRotation(x, y, z, w float32) {
	t.previousRotation = mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}
}

// PreviousTranslation returns the translation captured by the last Tick.
func (t *Transform) PreviousTranslation() mgl32.Vec3 { return t.previousTranslation }

// SetPreviousTranslation overrides the translation captured by the last Tick.
func (t *Transform) SetPreviousTranslation(x, y, z float32) {
	t.previousTranslation = mgl32.Vec3{x, y, z}
}

// --- Helpers ---

// lerpV3 returns a*(1-s) + b*s. Both endpoints are reproduced exactly.
func lerpV3(a, b mgl32.Vec3, s float32) mgl32.Vec3 {
	return a.Mul(1 - s).Add(b.Mul(s))
}

// slerp interpolates along the shortest arc from p to q. The result is
// always a unit quaternion; unit endpoints are returned unchanged.
func slerp(p, q mgl32.Quat, s float32) mgl32.Quat {
	switch s {
	case 0:
		return p.Normalize()
	case 1:
		return q.Normalize()
	}
	if p.Dot(q) < 0 {
		q = q.Scale(-1)
	}
	return mgl32.QuatSlerp(p, q, s)
}
