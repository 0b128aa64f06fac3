package turn

import (
	"fmt"
	"log"

	"github.com/samdwyer/boardwalk/internal/events"
)

// InitState seats the tokens at the board's start waypoint and hands control
// to the player. Entered exactly once per session; there is no persisted
// turn phase to restore.
type InitState struct{}

// NewInit creates the session's initial state.
func NewInit() *InitState { return &InitState{} }

func (s *InitState) Kind() Kind { return KindInit }

func (s *InitState) Enter(tc *Context) {
	if tc.Graph == nil || tc.Player == nil {
		// Configuration fault: nothing to seat. Degrade instead of crashing.
		log.Printf("init: missing board or player token, degrading to player turn")
		tc.Machine.Transition(tc, NewPlayerTurn())
		return
	}
	start := tc.Graph.Waypoint(tc.Graph.Start)
	tc.Player.Place(start)
	if tc.Rival != nil {
		tc.Rival.Place(start)
	}
	tc.LastMessage = "The session begins."
	tc.Machine.Transition(tc, NewPlayerTurn())
}

func (s *InitState) Exit(tc *Context)   {}
func (s *InitState) Update(tc *Context) {}

// PlayerTurnState waits for the player's roll. It is also the safe default
// state every fault path degrades to.
type PlayerTurnState struct {
	cancelRoll func()
}

// NewPlayerTurn creates the player's idle phase.
func NewPlayerTurn() *PlayerTurnState { return &PlayerTurnState{} }

func (s *PlayerTurnState) Kind() Kind { return KindPlayerTurn }

func (s *PlayerTurnState) Enter(tc *Context) {
	tc.LastMessage = "Your turn. Roll to move."
	s.cancelRoll = tc.Bus.Subscribe(events.KindRollRequested, func(events.Event) {
		steps := tc.RollDice()
		tc.Bus.Publish(events.Event{
			Kind:  events.KindDiceRolled,
			Actor: "player",
			Steps: steps,
		})
		tc.LastMessage = fmt.Sprintf("You rolled a %d.", steps)
		tc.Machine.Transition(tc, NewMovement(steps))
	})
}

func (s *PlayerTurnState) Exit(tc *Context) {
	if s.cancelRoll != nil {
		s.cancelRoll()
		s.cancelRoll = nil
	}
}

func (s *PlayerTurnState) Update(tc *Context) {}

// MovementState drives the player's token through its step budget. A fork
// raised by the controller suspends this state under a fork-selection
// overlay; the state itself keeps all its data while suspended.
type MovementState struct {
	steps int

	cancelFork  func()
	cancelEnded func()
}

// NewMovement creates the movement phase with a step budget.
func NewMovement(steps int) *MovementState {
	return &MovementState{steps: steps}
}

func (s *MovementState) Kind() Kind { return KindMovement }

func (s *MovementState) Enter(tc *Context) {
	ctrl := tc.PlayerCtrl
	if ctrl == nil {
		log.Printf("movement: no controller configured, degrading to player turn")
		tc.LastMessage = "Nothing happens."
		tc.Machine.Transition(tc, NewPlayerTurn())
		return
	}

	s.cancelFork = tc.Bus.Subscribe(events.KindForkRequested, func(ev events.Event) {
		if ev.Actor != tc.Player.Actor {
			return
		}
		tc.Machine.PushOverlay(tc, NewForkSelection(ctrl, ev.WaypointID, ev.Candidates))
	})
	s.cancelEnded = tc.Bus.Subscribe(events.KindMoveEnded, func(ev events.Event) {
		if ev.Actor != tc.Player.Actor {
			return
		}
		tc.Machine.Transition(tc, NewEvent())
	})

	if err := ctrl.Begin(tc.Base, s.steps); err != nil {
		log.Printf("movement: %v, degrading to player turn", err)
		tc.LastMessage = "Nothing happens."
		tc.Machine.Transition(tc, NewPlayerTurn())
	}
}

func (s *MovementState) Exit(tc *Context) {
	// Release subscriptions before stopping the controller so a stop
	// triggered by this teardown cannot re-enter the machine.
	if s.cancelFork != nil {
		s.cancelFork()
		s.cancelFork = nil
	}
	if s.cancelEnded != nil {
		s.cancelEnded()
		s.cancelEnded = nil
	}
	if tc.PlayerCtrl != nil && tc.PlayerCtrl.Moving() {
		tc.PlayerCtrl.StopImmediate()
	}
}

func (s *MovementState) Update(tc *Context) {
	if tc.PlayerCtrl != nil {
		tc.PlayerCtrl.Update()
	}
}

// EventState resolves what the landing tile set in motion: a zone transfer
// needs a confirmation overlay before it commits; anything else passes the
// turn straight on.
type EventState struct{}

// NewEvent creates the post-move event phase.
func NewEvent() *EventState { return &EventState{} }

func (s *EventState) Kind() Kind { return KindEvent }

func (s *EventState) Enter(tc *Context) {
	if tc.PlayerCtrl == nil {
		return
	}
	if tr := tc.PlayerCtrl.TakeTransfer(); tr != nil {
		tc.Machine.PushOverlay(tc, NewConfirmation(tc.Player, tr))
	}
}

func (s *EventState) Exit(tc *Context) {}

func (s *EventState) Update(tc *Context) {
	// Runs only once no overlay remains: any pending confirmation has been
	// answered by now.
	tc.Machine.Transition(tc, NewEnemyTurn())
}

// EnemyTurnState runs the rival's automated move on the same controller
// codepath the player uses. Forks resolve from the session rng, keeping
// automated play reproducible under a fixed seed.
type EnemyTurnState struct {
	cancelEnded func()
	done        bool
}

// NewEnemyTurn creates the rival's automated phase.
func NewEnemyTurn() *EnemyTurnState { return &EnemyTurnState{} }

func (s *EnemyTurnState) Kind() Kind { return KindEnemyTurn }

func (s *EnemyTurnState) Enter(tc *Context) {
	ctrl := tc.RivalCtrl
	if ctrl == nil || tc.Rival == nil {
		log.Printf("enemy turn: no rival configured, degrading to player turn")
		tc.Machine.Transition(tc, NewPlayerTurn())
		return
	}

	steps := tc.RollDice()
	tc.Bus.Publish(events.Event{
		Kind:  events.KindDiceRolled,
		Actor: tc.Rival.Actor,
		Steps: steps,
	})
	tc.LastMessage = fmt.Sprintf("%s rolled a %d.", tc.Rival.Name, steps)

	s.cancelEnded = tc.Bus.Subscribe(events.KindMoveEnded, func(ev events.Event) {
		if ev.Actor == tc.Rival.Actor {
			s.done = true
		}
	})

	if err := ctrl.Begin(tc.Base, steps); err != nil {
		log.Printf("enemy turn: %v, degrading to player turn", err)
		tc.Machine.Transition(tc, NewPlayerTurn())
	}
}

func (s *EnemyTurnState) Exit(tc *Context) {
	if s.cancelEnded != nil {
		s.cancelEnded()
		s.cancelEnded = nil
	}
	if tc.RivalCtrl != nil && tc.RivalCtrl.Moving() {
		tc.RivalCtrl.StopImmediate()
	}
}

func (s *EnemyTurnState) Update(tc *Context) {
	ctrl := tc.RivalCtrl
	if s.done {
		// The rival answers its own zone prompts from the rng; no overlay.
		if tr := ctrl.TakeTransfer(); tr != nil && tc.RNG.Intn(2) == 0 {
			tc.CommitTransfer(tc.Rival, tr)
		}
		tc.Machine.Transition(tc, NewPlayerTurn())
		return
	}
	ctrl.Update()
	if ctrl.AwaitingFork() {
		cands, _ := ctrl.ForkCandidates()
		ctrl.ResolveFork(tc.RNG.Intn(len(cands)))
	}
}
