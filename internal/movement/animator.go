// Package movement drives a token step-by-step across the board graph,
// suspending for fork choices and animation playback.
package movement

import "github.com/samdwyer/boardwalk/internal/board"

// Animator plays back one edge traversal. The controller treats it as an
// opaque asynchronous collaborator: Start begins playback, the game loop
// drives Advance, and the controller polls Done once per tick. Cancel stops
// playback immediately. Done must report true exactly until the next Start.
type Animator interface {
	Start(g *board.Graph, from *board.Waypoint, c board.Connection, speed float64)
	Advance(dt float64)
	Done() bool
	Pos() board.Vec2
	Cancel()
}

// Instant is an animator that completes every traversal immediately. Used by
// headless simulation and tests.
type Instant struct {
	pos board.Vec2
}

// NewInstant creates an instant animator.
func NewInstant() *Instant {
	return &Instant{}
}

// Start jumps straight to the end of the connection.
func (a *Instant) Start(g *board.Graph, from *board.Waypoint, c board.Connection, speed float64) {
	a.pos = g.PointOn(from, c, 1)
}

// Advance is a no-op; the traversal already completed.
func (a *Instant) Advance(dt float64) {}

// Done always reports completion.
func (a *Instant) Done() bool { return true }

// Pos returns the end of the last traversal.
func (a *Instant) Pos() board.Vec2 { return a.pos }

// Cancel is a no-op.
func (a *Instant) Cancel() {}
