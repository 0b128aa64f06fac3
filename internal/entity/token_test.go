package entity

import (
	"testing"

	"github.com/samdwyer/boardwalk/internal/board"
)

func TestPlaceClearsHistory(t *testing.T) {
	g := board.New()
	a, _ := g.Add(0, board.Vec2{}, "")
	b, _ := g.Add(1, board.Vec2{X: 5}, "")

	tok := NewPlayer()
	if tok.Placed() {
		t.Error("fresh token should not be placed")
	}

	tok.Place(a)
	tok.Advance(b)
	if tok.Prev != a || tok.Current != b {
		t.Fatalf("Advance: current=%v prev=%v, want current=B prev=A", tok.Current, tok.Prev)
	}

	tok.Moving = true
	tok.Place(a)
	if tok.Current != a || tok.Prev != nil || tok.Moving {
		t.Error("Place should reseat the token and clear prev/moving")
	}
}

func TestAdvanceTracksArrivalDirection(t *testing.T) {
	g := board.New()
	a, _ := g.Add(0, board.Vec2{}, "")
	b, _ := g.Add(1, board.Vec2{X: 5}, "")
	c, _ := g.Add(2, board.Vec2{X: 10}, "")

	tok := NewRival()
	tok.Place(a)

	tok.Advance(b)
	tok.Advance(c)
	if tok.Prev != b || tok.Current != c {
		t.Errorf("after two steps: current=%v prev=%v, want current=C prev=B", tok.Current, tok.Prev)
	}
}
