package arbor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a plane equation Normal·p + D = 0. Points with a positive signed
// distance lie on the inner side.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Frustum plane indices, in the order returned by Camera.Planes.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneTop
	PlaneBottom
	PlaneNear
	PlaneFar
	numPlanes
)

// Camera holds the view and projection matrices and the frustum planes
// derived from them. Planes are recomputed lazily on first use after either
// matrix changes.
type Camera struct {
	view       mgl32.Mat4
	projection mgl32.Mat4

	planes [numPlanes]Plane
	dirty  bool

	// recomputes counts plane recomputations.
	recomputes int
}

// NewCamera creates a camera with identity view and projection.
func NewCamera() *Camera {
	return &Camera{
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		dirty:      true,
	}
}

// SetView sets the view matrix from 16 values in row-major order.
func (c *Camera) SetView(m [16]float32) {
	c.SetViewMatrix(mgl32.Mat4(m).Transpose())
}

// SetProjection sets the projection matrix from 16 values in row-major order.
func (c *Camera) SetProjection(m [16]float32) {
	c.SetProjectionMatrix(mgl32.Mat4(m).Transpose())
}

// SetViewMatrix sets the view matrix.
func (c *Camera) SetViewMatrix(m mgl32.Mat4) {
	c.view = m
	c.dirty = true
}

// SetProjectionMatrix sets the projection matrix.
func (c *Camera) SetProjectionMatrix(m mgl32.Mat4) {
	c.projection = m
	c.dirty = true
}

// LookAt sets the view matrix to look from eye towards center.
func (c *Camera) LookAt(eye, center, up mgl32.Vec3) {
	c.SetViewMatrix(mgl32.LookAtV(eye, center, up))
}

// SetPerspective sets a perspective projection. fovy is in radians.
func (c *Camera) SetPerspective(fovy, aspect, near, far float32) {
	c.SetProjectionMatrix(mgl32.Perspective(fovy, aspect, near, far))
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// MarkDirty forces a recomputation of the frustum planes.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// Planes returns the six frustum planes, recomputing them if either matrix
// changed since the last call.
func (c *Camera) Planes() [numPlanes]Plane {
	c.computePlanes()
	return c.planes
}

// computePlanes extracts the frustum planes from projection * view, each
// normalized by the length of its normal. No-op unless dirty.
func (c *Camera) computePlanes() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.recomputes++

	m := c.projection.Mul4(c.view)
	r1, r2, r3, r4 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	c.planes[PlaneLeft] = makePlane(r4.Add(r1))
	c.planes[PlaneRight] = makePlane(r4.Sub(r1))
	c.planes[PlaneTop] = makePlane(r4.Sub(r2))
	c.planes[PlaneBottom] = makePlane(r4.Add(r2))
	c.planes[PlaneNear] = makePlane(r4.Add(r3))
	c.planes[PlaneFar] = makePlane(r4.Sub(r3))
}

func makePlane(v mgl32.Vec4) Plane {
	inv := 1 / v.Vec3().Len()
	return Plane{Normal: v.Vec3().Mul(inv), D: v[3] * inv}
}

// Inside reports whether n's bounding box, placed by its global transform
// at interpolation factor delta, may be visible. The test is conservative:
// boxes near frustum edges may pass, visible boxes never fail.
func (c *Camera) Inside(n *Node, delta float32) bool {
	transform := n.transform.Global(delta)

	inf := float32(math.Inf(1))
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, corner := range n.bounds.Corners() {
		p := transform.Mul4x1(corner.Vec4(1)).Vec3()
		for i := range p {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}

	c.computePlanes()
	for i := range c.planes {
		pl := &c.planes[i]
		if pl.Distance(negativeVertex(lo, hi, pl.Normal)) < 0 {
			return false
		}
	}
	return true
}

// negativeVertex returns the corner of [lo, hi] furthest along normal.
// If that corner is behind the plane, every other corner is too.
func negativeVertex(lo, hi, normal mgl32.Vec3) mgl32.Vec3 {
	v := hi
	for i := range v {
		if normal[i] <= 0 {
			v[i] = lo[i]
		}
	}
	return v
}

// Project maps a world-space point through view and projection onto the
// unit viewport. The z component is the window depth in [0, 1] for points
// between the near and far planes.
func (c *Camera) Project(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Project(p, c.view, c.projection, 0, 0, 1, 1)
}

// Depth returns the window depth of n's world-space origin at
// interpolation factor delta.
func (c *Camera) Depth(n *Node, delta float32) float32 {
	origin := n.transform.Global(delta).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	return c.Project(origin)[2]
}
