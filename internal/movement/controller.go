package movement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/events"
	"github.com/samdwyer/boardwalk/internal/telemetry"
	"github.com/samdwyer/boardwalk/internal/tile"
)

// TileSource resolves a waypoint's tile ID to its descriptor.
type TileSource interface {
	GetByID(id string) *tile.Descriptor
}

// Configuration faults reported by Begin. The containing turn state logs
// these and degrades to the player-turn state rather than crashing.
var (
	ErrNoGraph    = errors.New("movement: no graph configured")
	ErrNoToken    = errors.New("movement: no token configured")
	ErrNoAnimator = errors.New("movement: no animator configured")
	ErrBusy       = errors.New("movement: a move is already in progress")
)

// Internal suspension phases. Waiting is expressed as an explicit phase
// re-checked once per tick, never as a blocked goroutine.
type phase int

const (
	phaseIdle phase = iota
	phaseSelect
	phaseAwaitFork
	phaseAnimate
)

// Controller consumes a fixed step budget by advancing a token exactly one
// graph edge per step. It owns the token's position fields for the duration
// of a move. All methods must be called from the game loop goroutine.
type Controller struct {
	graph    *board.Graph
	token    *entity.Token
	bus      *events.Bus
	animator Animator
	tiles    TileSource

	phase          phase
	stepsRemaining int
	stepsTaken     int
	moveID         uuid.UUID
	moveSpan       trace.Span

	// fork suspension state
	candidates []*board.Waypoint
	candConns  []board.Connection

	// step in flight
	target *board.Waypoint

	// set when a zone tile fires; collected by the event phase
	transfer *tile.Transfer
}

// NewController creates a controller for one token on one board.
func NewController(g *board.Graph, tok *entity.Token, bus *events.Bus, anim Animator, tiles TileSource) *Controller {
	return &Controller{
		graph:    g,
		token:    tok,
		bus:      bus,
		animator: anim,
		tiles:    tiles,
	}
}

// Begin starts a move with the given step budget. A budget of zero is legal
// and ends on the next Update without the token leaving its waypoint.
func (c *Controller) Begin(ctx context.Context, steps int) error {
	switch {
	case c.graph == nil:
		return ErrNoGraph
	case c.token == nil || !c.token.Placed():
		return ErrNoToken
	case c.animator == nil:
		return ErrNoAnimator
	case c.phase != phaseIdle:
		return ErrBusy
	}

	c.stepsRemaining = steps
	c.stepsTaken = 0
	c.moveID = uuid.New()
	c.transfer = nil
	c.phase = phaseSelect
	c.token.Moving = true

	_, c.moveSpan = telemetry.Tracer("movement").Start(ctx, "move",
		trace.WithAttributes(
			attribute.String("move.actor", c.token.Actor),
			attribute.Int("move.budget", steps),
		))

	c.bus.Publish(events.Event{
		Kind:   events.KindMoveStarted,
		Actor:  c.token.Actor,
		MoveID: c.moveID,
		Steps:  steps,
	})
	return nil
}

// Update advances the move by at most one phase change. Called once per
// scheduler tick while the movement state is active.
func (c *Controller) Update() {
	switch c.phase {
	case phaseIdle:
		return

	case phaseSelect:
		if c.stepsRemaining <= 0 {
			c.finish()
			return
		}
		valid := c.graph.ValidNext(c.token.Current, c.token.Prev)
		if len(valid) == 0 {
			// True dead end. Normal early termination, not an error.
			c.finish()
			return
		}
		if len(valid) == 1 {
			c.startStep(valid[0])
			return
		}
		// Fork: suspend until an overlay delivers a choice
		c.candidates = valid
		c.candConns = c.graph.ConnectionsTo(c.token.Current, valid)
		c.phase = phaseAwaitFork
		c.bus.Publish(events.Event{
			Kind:       events.KindForkRequested,
			Actor:      c.token.Actor,
			MoveID:     c.moveID,
			WaypointID: c.token.Current.ID,
			Candidates: waypointIDs(valid),
		})

	case phaseAwaitFork:
		// Suspended. The fork overlay resolves or abandons us.

	case phaseAnimate:
		if !c.animator.Done() {
			return
		}
		c.completeStep()
	}
}

// ResolveFork delivers the choice made in the fork-selection overlay. An
// out-of-range choice is a data fault and ends the move early.
func (c *Controller) ResolveFork(choice int) {
	if c.phase != phaseAwaitFork {
		return
	}
	if choice < 0 || choice >= len(c.candidates) {
		c.finish()
		return
	}
	target := c.candidates[choice]
	c.bus.Publish(events.Event{
		Kind:       events.KindForkResolved,
		Actor:      c.token.Actor,
		MoveID:     c.moveID,
		WaypointID: target.ID,
		Choice:     choice,
	})
	c.candidates = nil
	c.candConns = nil
	c.startStep(target)
}

// Abandon ends the move early without a choice, for when the fork overlay is
// torn down before resolving.
func (c *Controller) Abandon() {
	if c.phase != phaseAwaitFork {
		return
	}
	c.finish()
}

// StopImmediate halts the move right now: the animation is cancelled, the
// moving flag clears, and no further steps run. Safe to call when no move is
// in flight; the move-ended signal is never published twice.
func (c *Controller) StopImmediate() {
	if c.phase == phaseIdle {
		return
	}
	c.animator.Cancel()
	c.finish()
}

// Moving reports whether a move is in progress.
func (c *Controller) Moving() bool {
	return c.phase != phaseIdle
}

// AwaitingFork reports whether the controller is suspended on a fork choice.
func (c *Controller) AwaitingFork() bool {
	return c.phase == phaseAwaitFork
}

// Animating reports whether the controller is waiting on edge playback.
func (c *Controller) Animating() bool {
	return c.phase == phaseAnimate
}

// ForkCandidates returns the suspended fork's choices and their edges,
// parallel slices in connection authoring order.
func (c *Controller) ForkCandidates() ([]*board.Waypoint, []board.Connection) {
	return c.candidates, c.candConns
}

// StepsRemaining returns the unconsumed step budget.
func (c *Controller) StepsRemaining() int {
	return c.stepsRemaining
}

// Token returns the token this controller drives.
func (c *Controller) Token() *entity.Token {
	return c.token
}

// TakeTransfer returns the zone transfer requested by a tile during the move,
// if any, and clears it. The event phase consumes this to ask for
// confirmation before committing.
func (c *Controller) TakeTransfer() *tile.Transfer {
	t := c.transfer
	c.transfer = nil
	return t
}

// startStep begins the traversal of one edge to the chosen target.
func (c *Controller) startStep(target *board.Waypoint) {
	conn, ok := c.graph.ConnectionTo(c.token.Current, target.ID)
	if !ok {
		// Data fault: the chosen edge does not exist. No valid move.
		c.finish()
		return
	}
	c.target = target
	c.phase = phaseAnimate
	c.animator.Start(c.graph, c.token.Current, conn, c.token.StepSpeed)
}

// completeStep commits the traversed edge and fires tile effects.
func (c *Controller) completeStep() {
	c.token.Advance(c.target)
	c.target = nil
	c.stepsRemaining--
	c.stepsTaken++

	c.fireTile()

	// A tile effect may have stopped the move (scene transition request
	// handling can call StopImmediate synchronously).
	if c.phase == phaseIdle {
		return
	}
	if c.stepsRemaining <= 0 {
		c.finish()
		return
	}
	c.phase = phaseSelect
}

// fireTile invokes the entered waypoint's tile effect when it triggers on
// pass or this is the final step. Stop-only tiles stay silent mid-path.
func (c *Controller) fireTile() {
	id := c.token.Current.TileID
	if id == "" || c.tiles == nil {
		return
	}
	desc := c.tiles.GetByID(id)
	if desc == nil {
		// Data fault: board references a tile that does not exist.
		return
	}
	final := c.stepsRemaining <= 0
	if !desc.TriggerOnPass && !final {
		return
	}

	outcome := tile.Dispatch(desc, c.token)
	if !outcome.Fired {
		return
	}
	if outcome.Transfer != nil {
		c.transfer = outcome.Transfer
	}
	c.bus.Publish(events.Event{
		Kind:       events.KindTileEntered,
		Actor:      c.token.Actor,
		MoveID:     c.moveID,
		WaypointID: c.token.Current.ID,
		Message:    outcome.Message,
	})
}

// finish ends the move exactly once.
func (c *Controller) finish() {
	if c.phase == phaseIdle {
		return
	}
	c.phase = phaseIdle
	c.candidates = nil
	c.candConns = nil
	c.target = nil
	c.token.Moving = false

	if c.moveSpan != nil {
		c.moveSpan.SetAttributes(
			attribute.Int("move.steps_taken", c.stepsTaken),
			attribute.Int("move.final_waypoint", c.token.Current.ID),
		)
		c.moveSpan.End()
		c.moveSpan = nil
	}

	c.bus.Publish(events.Event{
		Kind:       events.KindMoveEnded,
		Actor:      c.token.Actor,
		MoveID:     c.moveID,
		WaypointID: c.token.Current.ID,
		Steps:      c.stepsTaken,
	})
}

func waypointIDs(ws []*board.Waypoint) []int {
	out := make([]int, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}
