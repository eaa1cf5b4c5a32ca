package arbor

import "time"

// WalkByMaterial returns the references of the visible nodes in n's subtree,
// ordered for batching: ascending by material, with traversal order kept
// among nodes sharing a material.
//
// Every node is tested against cam at interpolation factor delta; culled
// nodes do not prune their children. The sort only runs when n is a root
// (has no parent); walks started below the root return the visible nodes in
// depth-first pre-order.
func (n *Node) WalkByMaterial(cam *Camera, delta float32) []any {
	return references(n.AppendByMaterial(nil, cam, delta))
}

// WalkByPosition is like WalkByMaterial but orders the visible nodes back
// to front: descending by the projected depth of each node's origin, which
// is what alpha blending needs.
func (n *Node) WalkByPosition(cam *Camera, delta float32) []any {
	return references(n.AppendByPosition(nil, cam, delta))
}

// AppendByMaterial appends the visible nodes of n's subtree to dst and, if n
// is a root, stable sorts all of dst by material.
func (n *Node) AppendByMaterial(dst []*Node, cam *Camera, delta float32) []*Node {
	w := walker{cam: cam, delta: delta, nodes: dst}
	w.walkByMaterial(n)
	return w.nodes
}

// AppendByPosition appends the visible nodes of n's subtree to dst and, if n
// is a root, stable sorts all of dst back to front.
func (n *Node) AppendByPosition(dst []*Node, cam *Camera, delta float32) []*Node {
	w := walker{cam: cam, delta: delta, nodes: dst}
	w.walkByPosition(n)
	return w.nodes
}

// walker carries the result accumulator and sort scratch space through a
// walk. A walker must not be shared by concurrent walks.
type walker struct {
	cam   *Camera
	delta float32

	nodes   []*Node
	sortBuf []*Node

	// depths memoizes projected depth per node during a position sort.
	depths      map[*Node]float32
	projections int

	timed    bool
	sortTime time.Duration
}

// reset prepares w for a new walk, keeping its buffers.
func (w *walker) reset(cam *Camera, delta float32) {
	w.cam = cam
	w.delta = delta
	w.nodes = w.nodes[:0]
	w.projections = 0
	w.sortTime = 0
}

func (w *walker) walkByMaterial(n *Node) {
	if w.cam.Inside(n, w.delta) {
		w.nodes = append(w.nodes, n)
	}
	for _, child := range n.children {
		w.walkByMaterial(child)
	}
	if n.parent == nil {
		w.sortByMaterial()
	}
}

func (w *walker) walkByPosition(n *Node) {
	if w.cam.Inside(n, w.delta) {
		w.nodes = append(w.nodes, n)
	}
	for _, child := range n.children {
		w.walkByPosition(child)
	}
	if n.parent == nil {
		w.sortByPosition()
	}
}

func (w *walker) sortByMaterial() {
	var t0 time.Time
	if w.timed {
		t0 = time.Now()
	}
	w.mergeSort(func(a, b *Node) bool {
		return CompareMaterials(&a.material, &b.material) <= 0
	})
	if w.timed {
		w.sortTime = time.Since(t0)
	}
}

func (w *walker) sortByPosition() {
	var t0 time.Time
	if w.timed {
		t0 = time.Now()
	}
	if w.depths == nil {
		w.depths = make(map[*Node]float32, len(w.nodes))
	} else {
		clear(w.depths)
	}
	w.mergeSort(func(a, b *Node) bool {
		return w.depth(a) >= w.depth(b)
	})
	if w.timed {
		w.sortTime = time.Since(t0)
	}
}

// depth returns the memoized projected depth of n.
func (w *walker) depth(n *Node) float32 {
	if d, ok := w.depths[n]; ok {
		return d
	}
	d := w.cam.Depth(n, w.delta)
	w.depths[n] = d
	w.projections++
	return d
}

// --- Merge sort ---

// mergeSort sorts w.nodes in-place using w.sortBuf as scratch space.
// lessOrEqual must report whether a may sort before b; returning true for
// equal keys keeps the sort stable.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (w *walker) mergeSort(lessOrEqual func(a, b *Node) bool) {
	n := len(w.nodes)
	if n <= 1 {
		return
	}
	if cap(w.sortBuf) < n {
		w.sortBuf = make([]*Node, n)
	}
	w.sortBuf = w.sortBuf[:n]

	a := w.nodes
	b := w.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi, lessOrEqual)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(w.nodes, w.sortBuf)
	}
	clear(w.sortBuf)
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []*Node, lo, mid, hi int, lessOrEqual func(a, b *Node) bool) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if lessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// references returns the host references of nodes, in order.
func references(nodes []*Node) []any {
	refs := make([]any, len(nodes))
	for i, n := range nodes {
		refs[i] = n.ref
	}
	return refs
}
