// Package events provides the typed publish/subscribe channel that decouples
// turn phases from presentation. A Bus is constructed per game (or per test)
// and passed by reference; there is no ambient global registry.
package events

import "github.com/google/uuid"

// Kind identifies a domain occurrence.
type Kind int

const (
	// Engine events
	KindMoveStarted Kind = iota
	KindMoveEnded
	KindForkRequested
	KindForkResolved
	KindTileEntered
	KindDiceRolled

	// Input events, published by the presentation layer
	KindRollRequested
	KindChoicePicked
	KindConfirmAnswered
)

// String returns a human-readable event kind name.
func (k Kind) String() string {
	switch k {
	case KindMoveStarted:
		return "move_started"
	case KindMoveEnded:
		return "move_ended"
	case KindForkRequested:
		return "fork_requested"
	case KindForkResolved:
		return "fork_resolved"
	case KindTileEntered:
		return "tile_entered"
	case KindDiceRolled:
		return "dice_rolled"
	case KindRollRequested:
		return "roll_requested"
	case KindChoicePicked:
		return "choice_picked"
	case KindConfirmAnswered:
		return "confirm_answered"
	default:
		return "unknown"
	}
}

// Event is an immutable value describing a single occurrence. It is created
// and consumed synchronously during Publish and never stored. Only the
// fields relevant to the Kind are set.
type Event struct {
	Kind   Kind
	Actor  string    // which token the event concerns ("player", "rival")
	MoveID uuid.UUID // pairs move_started with its move_ended

	WaypointID int   // tile_entered, fork_requested: the node concerned
	Candidates []int // fork_requested: candidate target waypoint IDs
	Steps      int   // dice_rolled: rolled budget
	Choice     int   // fork_resolved, choice_picked: index into candidates
	Confirmed  bool  // confirm_answered
	Message    string
}
