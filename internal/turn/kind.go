// Package turn provides the two-channel hierarchical state machine that
// sequences a session: a primary channel of turn phases and an overlay
// channel that can suspend the primary phase without discarding its state.
package turn

// Kind identifies a primary turn phase.
type Kind int

const (
	// KindInit seats the tokens and hands control to the player.
	KindInit Kind = iota
	// KindPlayerTurn waits for the player to roll.
	KindPlayerTurn
	// KindMovement drives the player's token across the board.
	KindMovement
	// KindEvent resolves what the landing tile set in motion.
	KindEvent
	// KindEnemyTurn runs the rival's automated move.
	KindEnemyTurn
)

// String returns a human-readable phase name.
func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindPlayerTurn:
		return "player_turn"
	case KindMovement:
		return "movement"
	case KindEvent:
		return "event"
	case KindEnemyTurn:
		return "enemy_turn"
	default:
		return "unknown"
	}
}

// OverlayKind identifies an overlay phase.
type OverlayKind int

const (
	// OverlayForkSelection resolves an ambiguous path mid-move.
	OverlayForkSelection OverlayKind = iota
	// OverlayConfirmation resolves a yes/no question before an
	// irreversible transition.
	OverlayConfirmation
)

// String returns a human-readable overlay name.
func (k OverlayKind) String() string {
	switch k {
	case OverlayForkSelection:
		return "fork_selection"
	case OverlayConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}
