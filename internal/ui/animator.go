package ui

import "github.com/samdwyer/boardwalk/internal/board"

// SmoothAnimator plays an edge traversal over several frames, tracing the
// curve so the token visibly follows it. Progress advances by dt times the
// token's step speed, so speed is the fraction of an edge covered per tick.
type SmoothAnimator struct {
	graph *board.Graph
	from  *board.Waypoint
	conn  board.Connection
	speed float64

	t      float64
	active bool
	pos    board.Vec2
}

// NewSmoothAnimator creates an animator with no traversal in progress.
func NewSmoothAnimator() *SmoothAnimator {
	return &SmoothAnimator{}
}

// Start begins playback of one edge from its source waypoint.
func (a *SmoothAnimator) Start(g *board.Graph, from *board.Waypoint, c board.Connection, speed float64) {
	a.graph = g
	a.from = from
	a.conn = c
	a.speed = speed
	a.t = 0
	a.active = true
	a.pos = from.Pos
}

// Advance moves playback forward by dt ticks.
func (a *SmoothAnimator) Advance(dt float64) {
	if !a.active {
		return
	}
	a.t += dt * a.speed
	if a.t >= 1 {
		a.t = 1
		a.active = false
	}
	a.pos = a.graph.PointOn(a.from, a.conn, a.t)
}

// Done reports whether the traversal has finished.
func (a *SmoothAnimator) Done() bool { return !a.active }

// Pos returns the current position along the curve.
func (a *SmoothAnimator) Pos() board.Vec2 { return a.pos }

// Cancel stops playback where it stands.
func (a *SmoothAnimator) Cancel() { a.active = false }
