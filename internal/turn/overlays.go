package turn

import (
	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/events"
	"github.com/samdwyer/boardwalk/internal/movement"
	"github.com/samdwyer/boardwalk/internal/tile"
)

// ForkSelection suspends a move until a path choice arrives on the event
// channel. It waits indefinitely; there are no timeouts. If the overlay is
// torn down without a choice, the suspended move is abandoned so it cannot
// leave the controller stuck mid-step.
type ForkSelection struct {
	ctrl       *movement.Controller
	node       int
	candidates []int

	cancelChoice func()
}

// NewForkSelection creates the overlay for a fork raised at the given node.
func NewForkSelection(ctrl *movement.Controller, node int, candidates []int) *ForkSelection {
	return &ForkSelection{ctrl: ctrl, node: node, candidates: candidates}
}

func (o *ForkSelection) OverlayKind() OverlayKind { return OverlayForkSelection }

// Candidates returns the target waypoint IDs on offer, in authoring order.
func (o *ForkSelection) Candidates() []int { return o.candidates }

func (o *ForkSelection) Enter(tc *Context) {
	tc.LastMessage = "The path splits. Choose a direction."
	o.cancelChoice = tc.Bus.Subscribe(events.KindChoicePicked, func(ev events.Event) {
		// A key outside the offered range is a mistyped input, not an
		// answer; keep waiting.
		if ev.Choice < 0 || ev.Choice >= len(o.candidates) {
			return
		}
		// The choice callback runs before the move loop resumes.
		o.ctrl.ResolveFork(ev.Choice)
		// Resolving may have ended the move and torn this overlay down
		// already; only pop if we are still on top.
		if tc.Machine.Overlay() == Overlay(o) {
			tc.Machine.PopOverlay(tc)
		}
	})
}

func (o *ForkSelection) Exit(tc *Context) {
	if o.cancelChoice != nil {
		o.cancelChoice()
		o.cancelChoice = nil
	}
	if o.ctrl.AwaitingFork() {
		// Torn down without a choice: end the move early.
		o.ctrl.Abandon()
	}
}

func (o *ForkSelection) Update(tc *Context) {}

// Confirmation suspends the turn until a yes/no answer arrives on the event
// channel, then commits or discards the pending zone transfer.
type Confirmation struct {
	tok      *entity.Token
	transfer *tile.Transfer

	cancelAnswer func()
}

// NewConfirmation creates the overlay for a transfer awaiting consent.
func NewConfirmation(tok *entity.Token, tr *tile.Transfer) *Confirmation {
	return &Confirmation{tok: tok, transfer: tr}
}

func (o *Confirmation) OverlayKind() OverlayKind { return OverlayConfirmation }

// Message returns the question shown to the player.
func (o *Confirmation) Message() string { return o.transfer.Message }

func (o *Confirmation) Enter(tc *Context) {
	tc.LastMessage = o.transfer.Message + " (y/n)"
	o.cancelAnswer = tc.Bus.Subscribe(events.KindConfirmAnswered, func(ev events.Event) {
		if ev.Confirmed {
			tc.CommitTransfer(o.tok, o.transfer)
		} else {
			tc.LastMessage = o.tok.Name + " stays on the board."
		}
		if tc.Machine.Overlay() == Overlay(o) {
			tc.Machine.PopOverlay(tc)
		}
	})
}

func (o *Confirmation) Exit(tc *Context) {
	if o.cancelAnswer != nil {
		o.cancelAnswer()
		o.cancelAnswer = nil
	}
}

func (o *Confirmation) Update(tc *Context) {}
