// Package entity provides the tokens that travel across the board.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/boardwalk/internal/board"
)

// DefaultStepSpeed is how far a token travels along a curve per tick, in
// curve-parameter units.
const DefaultStepSpeed = 0.08

// Token is a piece on the board. It tracks the waypoint it stands on and the
// waypoint it arrived from, which forbids immediate backtracking unless the
// board leaves no other option. Position fields are mutated exclusively by
// the movement controller while a move is in progress.
type Token struct {
	Name  string
	Glyph rune        // display symbol
	Color tcell.Color // display color
	Actor string      // event channel actor tag

	Current   *board.Waypoint // never nil once placed
	Prev      *board.Waypoint // node arrived from; nil until the first step
	Moving    bool
	StepSpeed float64 // per-step animation speed
}

// NewPlayer creates the player's token.
func NewPlayer() *Token {
	return &Token{
		Name:      "Player",
		Glyph:     '@',
		Color:     tcell.ColorYellow,
		Actor:     "player",
		StepSpeed: DefaultStepSpeed,
	}
}

// NewRival creates the automated rival's token.
func NewRival() *Token {
	return &Token{
		Name:      "Rival",
		Glyph:     'R',
		Color:     tcell.ColorRed,
		Actor:     "rival",
		StepSpeed: DefaultStepSpeed,
	}
}

// Place seats the token on a waypoint, clearing its travel history. Used at
// session start and after a zone transfer.
func (t *Token) Place(w *board.Waypoint) {
	t.Current = w
	t.Prev = nil
	t.Moving = false
}

// Advance records one completed step: the token now stands on to, having
// arrived from its previous position.
func (t *Token) Advance(to *board.Waypoint) {
	t.Prev = t.Current
	t.Current = to
}

// Placed reports whether the token has been seated on the board.
func (t *Token) Placed() bool {
	return t.Current != nil
}
