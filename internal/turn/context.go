package turn

import (
	"context"
	"math/rand"

	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/events"
	"github.com/samdwyer/boardwalk/internal/movement"
	"github.com/samdwyer/boardwalk/internal/tile"
)

// Default dice range for a roll.
const (
	DefaultDiceMin = 1
	DefaultDiceMax = 6
)

// Context is the shared mutable environment passed to every state. One
// Context exists per session; states read collaborators from it and record
// session-visible outcomes (messages) on it.
type Context struct {
	Base context.Context // for tracing spans started inside states

	Bus   *events.Bus
	Graph *board.Graph
	RNG   *rand.Rand

	Player     *entity.Token
	Rival      *entity.Token
	PlayerCtrl *movement.Controller
	RivalCtrl  *movement.Controller

	Machine *Machine

	DiceMin, DiceMax int

	// LastMessage is the most recent session-visible line, shown by the
	// renderer under the board.
	LastMessage string
}

// RollDice returns a roll in the configured dice range.
func (c *Context) RollDice() int {
	lo, hi := c.DiceMin, c.DiceMax
	if lo < 1 {
		lo = DefaultDiceMin
	}
	if hi < lo {
		hi = DefaultDiceMax
	}
	return lo + c.RNG.Intn(hi-lo+1)
}

// CommitTransfer applies a confirmed zone transfer: the token leaves the
// board and returns to the start waypoint for a fresh lap.
func (c *Context) CommitTransfer(tok *entity.Token, tr *tile.Transfer) {
	if tok == nil || tr == nil {
		return
	}
	c.LastMessage = tok.Name + " ventures into " + tr.Zone + " and returns to the start."
	if c.Graph != nil {
		tok.Place(c.Graph.Waypoint(c.Graph.Start))
	}
}
