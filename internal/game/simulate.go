package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/samdwyer/boardwalk/internal/boarddata"
	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/events"
	"github.com/samdwyer/boardwalk/internal/movement"
	"github.com/samdwyer/boardwalk/internal/turn"
)

// SimResult is the outcome of a headless session: a readable event trace
// plus where each token ended up. Two runs with the same seed and config
// produce identical results.
type SimResult struct {
	Seed    int64
	BoardID string
	Turns   int
	Trace   []string

	PlayerEnd int
	RivalEnd  int
}

// Simulate plays a session without a terminal. Instant animators collapse
// traversal playback. The player's forks are answered from choices while
// entries remain, then from the session rng; confirmations and all rival
// decisions come from the rng.
func Simulate(ctx context.Context, cfg Config, turns int, choices []int) (*SimResult, error) {
	if turns < 1 {
		return nil, fmt.Errorf("turns must be at least 1, got %d", turns)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tiles, err := boarddata.LoadTileRegistry()
	if err != nil {
		return nil, err
	}
	graph, boardID, err := BuildGraph(ctx, cfg, tiles, rng)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	player := entity.NewPlayer()
	rival := entity.NewRival()

	tc := &turn.Context{
		Base:       ctx,
		Bus:        bus,
		Graph:      graph,
		RNG:        rng,
		Player:     player,
		Rival:      rival,
		PlayerCtrl: movement.NewController(graph, player, bus, movement.NewInstant(), tiles),
		RivalCtrl:  movement.NewController(graph, rival, bus, movement.NewInstant(), tiles),
		Machine:    turn.NewMachine(),
		DiceMin:    cfg.DiceMin,
		DiceMax:    cfg.DiceMax,
	}

	res := &SimResult{Seed: seed, BoardID: boardID, Turns: turns}
	recordTrace(bus, res)

	tc.Machine.Transition(tc, turn.NewInit())

	// Generous cap; a session that needs more ticks than this is stuck.
	maxTicks := turns * 1000
	rolls := 0
	for tick := 0; tick < maxTicks; tick++ {
		switch ov := tc.Machine.Overlay().(type) {
		case *turn.ForkSelection:
			var choice int
			if len(choices) > 0 {
				choice, choices = choices[0], choices[1:]
			} else {
				choice = rng.Intn(len(ov.Candidates()))
			}
			bus.Publish(events.Event{Kind: events.KindChoicePicked, Choice: choice})
			continue
		case *turn.Confirmation:
			yes := rng.Intn(2) == 0
			bus.Publish(events.Event{Kind: events.KindConfirmAnswered, Confirmed: yes})
			continue
		}

		if tc.Machine.CurrentKind() == turn.KindPlayerTurn {
			if rolls == turns {
				res.PlayerEnd = player.Current.ID
				res.RivalEnd = rival.Current.ID
				return res, nil
			}
			rolls++
			bus.Publish(events.Event{Kind: events.KindRollRequested})
			continue
		}

		tc.Machine.Update(tc)
	}
	return nil, fmt.Errorf("simulation stalled after %d ticks in %v", maxTicks, tc.Machine.CurrentKind())
}

// recordTrace subscribes the result's trace to the session's event flow.
func recordTrace(bus *events.Bus, res *SimResult) {
	add := func(line string) { res.Trace = append(res.Trace, line) }

	bus.Subscribe(events.KindDiceRolled, func(ev events.Event) {
		add(fmt.Sprintf("%s rolled %d", ev.Actor, ev.Steps))
	})
	bus.Subscribe(events.KindForkRequested, func(ev events.Event) {
		add(fmt.Sprintf("%s at fork %d, options %v", ev.Actor, ev.WaypointID, ev.Candidates))
	})
	bus.Subscribe(events.KindForkResolved, func(ev events.Event) {
		add(fmt.Sprintf("%s took branch to %d", ev.Actor, ev.WaypointID))
	})
	bus.Subscribe(events.KindTileEntered, func(ev events.Event) {
		add(fmt.Sprintf("%s triggered tile at %d: %s", ev.Actor, ev.WaypointID, ev.Message))
	})
	bus.Subscribe(events.KindMoveEnded, func(ev events.Event) {
		add(fmt.Sprintf("%s stopped at %d after %d steps", ev.Actor, ev.WaypointID, ev.Steps))
	})
}
