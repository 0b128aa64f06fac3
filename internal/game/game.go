// Package game wires the board, tokens, turn machine and renderer into a
// playable terminal session.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/boarddata"
	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/events"
	"github.com/samdwyer/boardwalk/internal/movement"
	"github.com/samdwyer/boardwalk/internal/telemetry"
	"github.com/samdwyer/boardwalk/internal/turn"
	"github.com/samdwyer/boardwalk/internal/ui"
)

// Game holds the entire session state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer

	tiles *boarddata.TileRegistry
	tc    *turn.Context

	playerAnim *ui.SmoothAnimator
	rivalAnim  *ui.SmoothAnimator

	running bool
}

// New creates a new session on a fresh terminal screen.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		running:  true,
	}, nil
}

// Run executes the main session loop until the player quits or ctx closes.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tiles, err := boarddata.LoadTileRegistry()
	if err != nil {
		initSpan.End()
		return err
	}
	g.tiles = tiles

	graph, boardID, err := BuildGraph(ctx, g.cfg, tiles, rng)
	if err != nil {
		initSpan.End()
		return err
	}

	initSpan.SetAttributes(
		attribute.String("board.id", boardID),
		attribute.Int("board.waypoints", graph.Count()),
		attribute.Int64("session.seed", seed),
	)
	initSpan.End()

	bus := events.NewBus()
	player := entity.NewPlayer()
	rival := entity.NewRival()
	player.StepSpeed = g.cfg.StepSpeed
	rival.StepSpeed = g.cfg.StepSpeed
	g.playerAnim = ui.NewSmoothAnimator()
	g.rivalAnim = ui.NewSmoothAnimator()

	g.tc = &turn.Context{
		Base:       ctx,
		Bus:        bus,
		Graph:      graph,
		RNG:        rng,
		Player:     player,
		Rival:      rival,
		PlayerCtrl: movement.NewController(graph, player, bus, g.playerAnim, tiles),
		RivalCtrl:  movement.NewController(graph, rival, bus, g.rivalAnim, tiles),
		Machine:    turn.NewMachine(),
		DiceMin:    g.cfg.DiceMin,
		DiceMax:    g.cfg.DiceMax,
	}
	g.tc.Machine.Transition(g.tc, turn.NewInit())

	quit := make(chan struct{})
	evCh := make(chan tcell.Event, 16)
	go g.screen.ChannelEvents(evCh, quit)

	ticker := time.NewTicker(time.Duration(g.cfg.TickMillis) * time.Millisecond)
	defer ticker.Stop()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false

		case ev := <-evCh:
			g.handleEvent(ev)

		case <-ticker.C:
			g.playerAnim.Advance(1)
			g.rivalAnim.Advance(1)
			g.tc.Machine.Update(g.tc)
			g.render()
		}
	}

	close(quit)
	g.screen.Close()
	return nil
}

// BuildGraph resolves the configured board into a graph: an authored board
// from the registry, or a generated one when cfg.Board is "random". An
// unknown board ID is an error, not a fallback.
func BuildGraph(ctx context.Context, cfg Config, tiles *boarddata.TileRegistry, rng *rand.Rand) (*board.Graph, string, error) {
	if cfg.Board == BoardRandom {
		var ids []string
		for _, d := range tiles.All() {
			ids = append(ids, d.ID)
		}
		g, err := board.Generate(ctx, rng, board.GenerateOptions{TileIDs: ids})
		if err != nil {
			return nil, "", err
		}
		return g, BoardRandom, nil
	}

	boards, err := boarddata.LoadBoardRegistry()
	if err != nil {
		return nil, "", err
	}
	def := boards.GetByID(cfg.Board)
	if def == nil {
		return nil, "", fmt.Errorf("unknown board %q", cfg.Board)
	}
	if err := def.Validate(tiles); err != nil {
		return nil, "", err
	}
	g, err := def.Build()
	if err != nil {
		return nil, "", err
	}
	return g, def.ID, nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent translates keyboard input into session events. The key
// handler never mutates game state itself; states and overlays decide what
// each event means in the current phase.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyEnter:
		g.tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})

	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			g.running = false
		case r == 'r' || r == 'R':
			g.tc.Bus.Publish(events.Event{Kind: events.KindRollRequested})
		case r >= '1' && r <= '9':
			g.tc.Bus.Publish(events.Event{Kind: events.KindChoicePicked, Choice: int(r - '1')})
		case r == 'y' || r == 'Y':
			g.tc.Bus.Publish(events.Event{Kind: events.KindConfirmAnswered, Confirmed: true})
		case r == 'n' || r == 'N':
			g.tc.Bus.Publish(events.Event{Kind: events.KindConfirmAnswered, Confirmed: false})
		}
	}
}

// render assembles and draws one frame.
func (g *Game) render() {
	tc := g.tc
	frame := ui.Frame{
		Graph:     tc.Graph,
		NodeColor: g.nodeColor,
		Status:    tc.LastMessage,
		Hint:      g.hint(),
		Sprites: []ui.Sprite{
			g.sprite(tc.Rival, tc.RivalCtrl, g.rivalAnim),
			g.sprite(tc.Player, tc.PlayerCtrl, g.playerAnim),
		},
	}
	if fork, ok := tc.Machine.Overlay().(*turn.ForkSelection); ok {
		frame.Choices = fork.Candidates()
	}
	g.renderer.Render(frame)
}

func (g *Game) sprite(tok *entity.Token, ctrl *movement.Controller, anim *ui.SmoothAnimator) ui.Sprite {
	s := ui.Sprite{Glyph: tok.Glyph, Color: tok.Color}
	if ctrl.Animating() {
		s.Pos = anim.Pos()
	} else if tok.Placed() {
		s.Pos = tok.Current.Pos
	}
	return s
}

func (g *Game) nodeColor(tileID string) tcell.Color {
	if tileID == "" {
		return tcell.ColorGray
	}
	desc := g.tiles.GetByID(tileID)
	if desc == nil {
		return tcell.ColorGray
	}
	if c := boarddata.TileColor(desc.Color); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorGray
}

func (g *Game) hint() string {
	switch g.tc.Machine.Overlay().(type) {
	case *turn.ForkSelection:
		return "1-9 choose a path"
	case *turn.Confirmation:
		return "y/n answer"
	}
	if g.tc.Machine.CurrentKind() == turn.KindPlayerTurn {
		return "r roll  q quit"
	}
	return "q quit"
}

// Close cleans up session resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
