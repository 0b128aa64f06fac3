package board

import "fmt"

// Connection is a directed, curved edge to another waypoint. The curve is a
// quadratic Bezier whose control point is the source position plus Control.
// A connection A->B and its reverse B->A are distinct edges.
type Connection struct {
	To      int
	Control Vec2
}

// Waypoint is a node in the board graph. IDs are stable across sessions and
// assigned by authoring tooling or the generator; waypoints are read-only at
// runtime.
type Waypoint struct {
	ID     int
	Pos    Vec2
	Conns  []Connection
	TileID string // empty means no tile behavior bound to this node
}

// Graph is the traversable board: waypoints connected by curved edges.
// Construction order of waypoints and connections is preserved, which makes
// every query on the graph deterministic.
type Graph struct {
	byID  map[int]*Waypoint
	order []int
	Start int // waypoint tokens are seated on at the start of a session
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID: make(map[int]*Waypoint),
	}
}

// Add inserts a waypoint. Duplicate IDs are rejected: IDs cross-reference
// save data and authored tile bindings, so they must stay unique.
func (g *Graph) Add(id int, pos Vec2, tileID string) (*Waypoint, error) {
	if _, exists := g.byID[id]; exists {
		return nil, fmt.Errorf("duplicate waypoint id %d", id)
	}
	w := &Waypoint{ID: id, Pos: pos, TileID: tileID}
	g.byID[id] = w
	g.order = append(g.order, id)
	return w, nil
}

// Connect adds a directed edge from one waypoint to another. control is an
// offset from the source position defining the curve's control point.
// A second edge to the same target from the same source is rejected.
func (g *Graph) Connect(from, to int, control Vec2) error {
	src, ok := g.byID[from]
	if !ok {
		return fmt.Errorf("connect: unknown source waypoint %d", from)
	}
	if _, ok := g.byID[to]; !ok {
		return fmt.Errorf("connect: unknown target waypoint %d", to)
	}
	for _, c := range src.Conns {
		if c.To == to {
			return fmt.Errorf("connect: duplicate edge %d->%d", from, to)
		}
	}
	src.Conns = append(src.Conns, Connection{To: to, Control: control})
	return nil
}

// Waypoint returns the waypoint with the given ID, or nil if absent.
func (g *Graph) Waypoint(id int) *Waypoint {
	return g.byID[id]
}

// Waypoints returns all waypoints in authoring order.
func (g *Graph) Waypoints() []*Waypoint {
	out := make([]*Waypoint, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.byID[id])
	}
	return out
}

// Count returns the number of waypoints.
func (g *Graph) Count() int {
	return len(g.order)
}

// ValidNext returns the waypoints reachable from current, excluding the one
// the token arrived from unless it is the only reachable node (a dead end
// allows turning back). Order follows the authoring order of connections.
// arrivedFrom may be nil for a token that has not moved yet.
func (g *Graph) ValidNext(current, arrivedFrom *Waypoint) []*Waypoint {
	if current == nil {
		return nil
	}
	var out []*Waypoint
	var back *Waypoint
	for _, c := range current.Conns {
		target := g.byID[c.To]
		if target == nil {
			// Data fault: edge points outside the graph. Skip it.
			continue
		}
		if arrivedFrom != nil && target.ID == arrivedFrom.ID {
			back = target
			continue
		}
		out = append(out, target)
	}
	if len(out) == 0 && back != nil {
		return []*Waypoint{back}
	}
	return out
}

// ConnectionTo returns the direct edge from a waypoint to the target ID.
func (g *Graph) ConnectionTo(from *Waypoint, to int) (Connection, bool) {
	if from == nil {
		return Connection{}, false
	}
	for _, c := range from.Conns {
		if c.To == to {
			return c, true
		}
	}
	return Connection{}, false
}

// ConnectionsTo returns the edges from a waypoint to each target, parallel to
// the input slice. Targets with no direct edge are skipped, so callers
// presenting fork choices should pass targets obtained from ValidNext.
func (g *Graph) ConnectionsTo(from *Waypoint, targets []*Waypoint) []Connection {
	out := make([]Connection, 0, len(targets))
	for _, t := range targets {
		if c, ok := g.ConnectionTo(from, t.ID); ok {
			out = append(out, c)
		}
	}
	return out
}

// PointOn evaluates the position along a connection's curve at t in [0,1].
// t=0 is the source waypoint, t=1 the target.
func (g *Graph) PointOn(from *Waypoint, c Connection, t float64) Vec2 {
	target := g.byID[c.To]
	if from == nil || target == nil {
		return Vec2{}
	}
	return Bezier(from.Pos, from.Pos.Add(c.Control), target.Pos, t)
}
