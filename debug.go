package lectern

import (
	"fmt"
	"time"
)

// debugStats holds per-frame metrics. Only populated when Scene.debug is true.
type debugStats struct {
	drawTime   time.Duration
	nodes      int
	drawCalls  int
	animations int
	timers     int
}

// debugLog writes the frame stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("frame",
		"draw", stats.drawTime,
		"nodes", stats.nodes,
		"draw_calls", stats.drawCalls,
		"animations", stats.animations,
		"timers", stats.timers,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("lectern debug: %s on disposed node %q", op, n.Name))
	}
}
