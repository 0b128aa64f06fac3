package turn

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/events"
	"github.com/samdwyer/boardwalk/internal/movement"
	"github.com/samdwyer/boardwalk/internal/tile"
)

type tileMap map[string]*tile.Descriptor

func (m tileMap) GetByID(id string) *tile.Descriptor { return m[id] }

// lineGraph builds 0 <-> 1 <-> ... <-> n-1, a forkless path. Node tile
// bindings come from tiles, keyed by waypoint ID.
func lineGraph(t *testing.T, n int, tileIDs map[int]string) *board.Graph {
	t.Helper()
	g := board.New()
	for i := 0; i < n; i++ {
		_, err := g.Add(i, board.Vec2{X: float64(i * 5)}, tileIDs[i])
		require.NoError(t, err)
	}
	for i := 0; i < n-1; i++ {
		require.NoError(t, g.Connect(i, i+1, board.Vec2{}))
		require.NoError(t, g.Connect(i+1, i, board.Vec2{}))
	}
	return g
}

// forkGraph builds 0 -> 1, then 1 -> 2 and 1 -> 3: a genuine fork one step
// in, with both branches ending blind.
func forkGraph(t *testing.T) *board.Graph {
	t.Helper()
	g := board.New()
	for i := 0; i < 4; i++ {
		_, err := g.Add(i, board.Vec2{X: float64(i * 5)}, "")
		require.NoError(t, err)
	}
	require.NoError(t, g.Connect(0, 1, board.Vec2{}))
	require.NoError(t, g.Connect(1, 2, board.Vec2{}))
	require.NoError(t, g.Connect(1, 3, board.Vec2{}))
	return g
}

func newSession(g *board.Graph, tiles tileMap, seed int64) *Context {
	tc := &Context{
		Base:    context.Background(),
		Bus:     events.NewBus(),
		Graph:   g,
		RNG:     rand.New(rand.NewSource(seed)),
		Player:  entity.NewPlayer(),
		Rival:   entity.NewRival(),
		Machine: NewMachine(),
	}
	if g != nil {
		tc.PlayerCtrl = movement.NewController(g, tc.Player, tc.Bus, movement.NewInstant(), tiles)
		tc.RivalCtrl = movement.NewController(g, tc.Rival, tc.Bus, movement.NewInstant(), tiles)
	}
	return tc
}

// runUntil ticks the machine until the primary state reaches want with no
// overlay on top. Returns the sequence of distinct primary kinds observed.
func runUntil(t *testing.T, tc *Context, want Kind, maxTicks int) []Kind {
	t.Helper()
	seen := []Kind{tc.Machine.CurrentKind()}
	for i := 0; i < maxTicks; i++ {
		tc.Machine.Update(tc)
		if k := tc.Machine.CurrentKind(); k != seen[len(seen)-1] {
			seen = append(seen, k)
		}
		if tc.Machine.CurrentKind() == want && tc.Machine.OverlayDepth() == 0 {
			return seen
		}
	}
	t.Fatalf("machine never reached %v without overlays, saw %v", want, seen)
	return nil
}

func TestInitSeatsTokensAtStart(t *testing.T) {
	tc := newSession(lineGraph(t, 5, nil), tileMap{}, 1)
	tc.Machine.Transition(tc, NewInit())

	assert.Equal(t, KindPlayerTurn, tc.Machine.CurrentKind())
	require.True(t, tc.Player.Placed())
	require.True(t, tc.Rival.Placed())
	assert.Equal(t, tc.Graph.Start, tc.Player.Current.ID)
	assert.Equal(t, tc.Graph.Start, tc.Rival.Current.ID)
}

func TestInitDegradesWithoutGraph(t *testing.T) {
	tc := newSession(nil, tileMap{}, 1)
	tc.Machine.Transition(tc, NewInit())
	assert.Equal(t, KindPlayerTurn, tc.Machine.CurrentKind())
}

func TestRollRequestStartsMovement(t *testing.T) {
	tc := newSession(lineGraph(t, 10, nil), tileMap{}, 1)
	tc.Machine.Transition(tc, NewInit())

	var rolled []events.Event
	tc.Bus.Subscribe(events.KindDiceRolled, func(ev events.Event) {
		rolled = append(rolled, ev)
	})

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})

	assert.Equal(t, KindMovement, tc.Machine.CurrentKind())
	require.Len(t, rolled, 1)
	assert.Equal(t, "player", rolled[0].Actor)
	assert.GreaterOrEqual(t, rolled[0].Steps, DefaultDiceMin)
	assert.LessOrEqual(t, rolled[0].Steps, DefaultDiceMax)
}

func TestMovementDegradesWithoutController(t *testing.T) {
	tc := newSession(lineGraph(t, 5, nil), tileMap{}, 1)
	tc.PlayerCtrl = nil
	tc.Machine.Transition(tc, NewInit())

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})

	assert.Equal(t, KindPlayerTurn, tc.Machine.CurrentKind())
}

func TestFullTurnCycleAlternatesActors(t *testing.T) {
	tc := newSession(lineGraph(t, 20, nil), tileMap{}, 7)
	tc.Machine.Transition(tc, NewInit())

	var endedActors []string
	tc.Bus.Subscribe(events.KindMoveEnded, func(ev events.Event) {
		endedActors = append(endedActors, ev.Actor)
	})

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
	seen := runUntil(t, tc, KindPlayerTurn, 200)

	assert.Equal(t, []Kind{KindMovement, KindEvent, KindEnemyTurn, KindPlayerTurn}, seen)
	assert.Equal(t, []string{"player", "rival"}, endedActors)
	assert.False(t, tc.Player.Moving)
	assert.False(t, tc.Rival.Moving)
}

func TestForkSuspendsUnderOverlayAndResumes(t *testing.T) {
	tc := newSession(forkGraph(t), tileMap{}, 3)
	tc.DiceMin, tc.DiceMax = 3, 3
	tc.Machine.Transition(tc, NewInit())

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})

	// Tick until the fork overlay appears.
	for i := 0; i < 20 && tc.Machine.OverlayDepth() == 0; i++ {
		tc.Machine.Update(tc)
	}
	require.Equal(t, 1, tc.Machine.OverlayDepth())
	fork, ok := tc.Machine.Overlay().(*ForkSelection)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3}, fork.Candidates())
	assert.Equal(t, KindMovement, tc.Machine.CurrentKind(), "movement stays loaded under the overlay")

	tc.Bus.Publish(events.Event{Kind: events.KindChoicePicked, Choice: 1})

	assert.Equal(t, 0, tc.Machine.OverlayDepth())
	runUntil(t, tc, KindPlayerTurn, 200)
	assert.Equal(t, 3, tc.Player.Current.ID)
}

func TestConfirmedTransferReturnsTokenToStart(t *testing.T) {
	tiles := tileMap{
		"cave": {ID: "cave", Kind: tile.KindZone, Zone: "cave-1", Message: "Enter the cave?"},
	}
	tc := newSession(lineGraph(t, 8, map[int]string{2: "cave"}), tiles, 11)
	tc.DiceMin, tc.DiceMax = 2, 2
	tc.Machine.Transition(tc, NewInit())

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
	for i := 0; i < 20 && tc.Machine.OverlayDepth() == 0; i++ {
		tc.Machine.Update(tc)
	}
	require.Equal(t, 1, tc.Machine.OverlayDepth())
	confirm, ok := tc.Machine.Overlay().(*Confirmation)
	require.True(t, ok)
	assert.Equal(t, "Enter the cave?", confirm.Message())
	assert.Equal(t, KindEvent, tc.Machine.CurrentKind())

	tc.Bus.Publish(events.Event{Kind: events.KindConfirmAnswered, Confirmed: true})

	assert.Equal(t, 0, tc.Machine.OverlayDepth())
	assert.Equal(t, tc.Graph.Start, tc.Player.Current.ID)
	runUntil(t, tc, KindPlayerTurn, 200)
}

func TestDeclinedTransferLeavesTokenInPlace(t *testing.T) {
	tiles := tileMap{
		"cave": {ID: "cave", Kind: tile.KindZone, Zone: "cave-1", Message: "Enter the cave?"},
	}
	tc := newSession(lineGraph(t, 8, map[int]string{2: "cave"}), tiles, 11)
	tc.DiceMin, tc.DiceMax = 2, 2
	tc.Machine.Transition(tc, NewInit())

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
	for i := 0; i < 20 && tc.Machine.OverlayDepth() == 0; i++ {
		tc.Machine.Update(tc)
	}
	require.Equal(t, 1, tc.Machine.OverlayDepth())

	tc.Bus.Publish(events.Event{Kind: events.KindConfirmAnswered, Confirmed: false})

	assert.Equal(t, 0, tc.Machine.OverlayDepth())
	assert.Equal(t, 2, tc.Player.Current.ID)
	runUntil(t, tc, KindPlayerTurn, 200)
}

func TestForcedExitStopsMoveWithSingleEnd(t *testing.T) {
	tc := newSession(lineGraph(t, 10, nil), tileMap{}, 5)
	tc.DiceMin, tc.DiceMax = 5, 5
	tc.Machine.Transition(tc, NewInit())

	var ended int
	tc.Bus.Subscribe(events.KindMoveEnded, func(events.Event) { ended++ })

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
	tc.Machine.Update(tc) // mid-move
	require.True(t, tc.PlayerCtrl.Moving())

	tc.Machine.Transition(tc, NewPlayerTurn())

	assert.Equal(t, 1, ended)
	assert.False(t, tc.PlayerCtrl.Moving())
	assert.False(t, tc.Player.Moving)
	assert.Equal(t, KindPlayerTurn, tc.Machine.CurrentKind())
	// The interrupted move's end must not have bounced the machine through
	// the event phase.
	tc.Machine.Update(tc)
	assert.Equal(t, KindPlayerTurn, tc.Machine.CurrentKind())
}

func TestRivalPlayIsSeedReproducible(t *testing.T) {
	run := func(seed int64) int {
		tc := newSession(lineGraph(t, 20, nil), tileMap{}, seed)
		tc.Machine.Transition(tc, NewInit())
		tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
		runUntil(t, tc, KindPlayerTurn, 300)
		return tc.Rival.Current.ID
	}
	assert.Equal(t, run(99), run(99))
}

func TestMistypedChoiceKeepsForkOpen(t *testing.T) {
	tc := newSession(forkGraph(t), tileMap{}, 3)
	tc.DiceMin, tc.DiceMax = 3, 3
	tc.Machine.Transition(tc, NewInit())

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
	for i := 0; i < 20 && tc.Machine.OverlayDepth() == 0; i++ {
		tc.Machine.Update(tc)
	}
	require.Equal(t, 1, tc.Machine.OverlayDepth())

	// Pressing a key beyond the offered range must not forfeit the move.
	tc.Bus.Publish(events.Event{Kind: events.KindChoicePicked, Choice: 5})
	assert.Equal(t, 1, tc.Machine.OverlayDepth(), "overlay stays up")
	assert.True(t, tc.PlayerCtrl.AwaitingFork())

	tc.Bus.Publish(events.Event{Kind: events.KindChoicePicked, Choice: 0})
	assert.Equal(t, 0, tc.Machine.OverlayDepth())
	runUntil(t, tc, KindPlayerTurn, 200)
	assert.Equal(t, 2, tc.Player.Current.ID)
}

func TestAbandonedForkEndsMoveEarly(t *testing.T) {
	tc := newSession(forkGraph(t), tileMap{}, 3)
	tc.DiceMin, tc.DiceMax = 3, 3
	tc.Machine.Transition(tc, NewInit())

	tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
	for i := 0; i < 20 && tc.Machine.OverlayDepth() == 0; i++ {
		tc.Machine.Update(tc)
	}
	require.Equal(t, 1, tc.Machine.OverlayDepth())

	var ended int
	tc.Bus.Subscribe(events.KindMoveEnded, func(events.Event) { ended++ })

	// Yanking the machine out of movement tears the overlay down without
	// a choice; the suspended move must end, not hang.
	tc.Machine.Transition(tc, NewPlayerTurn())

	assert.Equal(t, 1, ended)
	assert.False(t, tc.PlayerCtrl.Moving())
	assert.Equal(t, 1, tc.Player.Current.ID, "token stays at the fork node")
}
