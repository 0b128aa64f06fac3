package ui

import (
	"testing"

	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/movement"
)

var _ movement.Animator = (*SmoothAnimator)(nil)

func edgeFixture(t *testing.T) (*board.Graph, *board.Waypoint, board.Connection) {
	t.Helper()
	g := board.New()
	if _, err := g.Add(0, board.Vec2{}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Add(1, board.Vec2{X: 10}, ""); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect(0, 1, board.Vec2{}); err != nil {
		t.Fatal(err)
	}
	from := g.Waypoint(0)
	conn, ok := g.ConnectionTo(from, 1)
	if !ok {
		t.Fatal("missing connection")
	}
	return g, from, conn
}

func TestSmoothAnimatorIdleBeforeStart(t *testing.T) {
	a := NewSmoothAnimator()
	if !a.Done() {
		t.Fatal("animator should report done before any traversal starts")
	}
}

func TestSmoothAnimatorTraversesEdge(t *testing.T) {
	g, from, conn := edgeFixture(t)

	a := NewSmoothAnimator()
	a.Start(g, from, conn, 0.25)
	if a.Done() {
		t.Fatal("done immediately after start")
	}
	if a.Pos() != from.Pos {
		t.Fatalf("start position = %v, want %v", a.Pos(), from.Pos)
	}

	for i := 0; i < 3; i++ {
		a.Advance(1)
		if a.Done() {
			t.Fatalf("done after %d of 4 ticks", i+1)
		}
	}
	a.Advance(1)
	if !a.Done() {
		t.Fatal("not done after full traversal")
	}
	end := g.PointOn(from, conn, 1)
	if a.Pos() != end {
		t.Fatalf("end position = %v, want %v", a.Pos(), end)
	}
}

func TestSmoothAnimatorCancelStopsInPlace(t *testing.T) {
	g, from, conn := edgeFixture(t)

	a := NewSmoothAnimator()
	a.Start(g, from, conn, 0.25)
	a.Advance(1)
	mid := a.Pos()

	a.Cancel()
	if !a.Done() {
		t.Fatal("cancel must complete the traversal")
	}
	a.Advance(1)
	if a.Pos() != mid {
		t.Fatal("position moved after cancel")
	}
}

func TestProjectionFitsBounds(t *testing.T) {
	g := board.New()
	if _, err := g.Add(0, board.Vec2{X: -50, Y: -50}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Add(1, board.Vec2{X: 50, Y: 50}, ""); err != nil {
		t.Fatal(err)
	}

	p := fitProjection(g, 80, 24)

	x0, y0 := p.cell(board.Vec2{X: -50, Y: -50})
	x1, y1 := p.cell(board.Vec2{X: 50, Y: 50})
	if x0 < 0 || y0 < 0 || x1 > 79 || y1 > 23 {
		t.Fatalf("projected corners out of range: (%d,%d) (%d,%d)", x0, y0, x1, y1)
	}
	if x1 <= x0 || y1 <= y0 {
		t.Fatalf("projection collapsed: (%d,%d) (%d,%d)", x0, y0, x1, y1)
	}
}
