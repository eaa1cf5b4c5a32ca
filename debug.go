package arbor

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-walk timing and visibility metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	order        Order
	walkTime     time.Duration
	sortTime     time.Duration
	nodeCount    int
	visibleCount int
	batchCount   int
	projections  int
}

// debugLog prints timing and visibility stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] walk (%s): %v | sort: %v | total: %v\n",
		stats.order, stats.walkTime-stats.sortTime, stats.sortTime, stats.walkTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] nodes: %d | visible: %d | batches: %d | projections: %d\n",
		stats.nodeCount, stats.visibleCount, stats.batchCount, stats.projections)
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugCheckCycle panics when attaching child under parent would make the
// hierarchy cyclic. Release builds leave this to the caller.
func debugCheckCycle(child, parent *Node) {
	if isAncestor(child, parent) {
		panic(fmt.Sprintf("arbor debug: SetParent on node %q would create a cycle", child.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
// Transform composition recurses once per level.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countNodes returns the number of nodes in n's subtree, n included.
func countNodes(n *Node) int {
	count := 0
	n.ForEach(func(*Node) { count++ })
	return count
}
