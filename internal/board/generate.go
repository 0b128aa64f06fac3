package board

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/boardwalk/internal/telemetry"
)

const (
	// Default generator parameters
	DefaultNodes  = 12
	DefaultChords = 3
	defaultRadius = 10.0

	// Control offsets bow edges outward by this fraction of the edge length.
	curveBow = 0.35
)

// GenerateOptions tunes the procedural board generator.
type GenerateOptions struct {
	Nodes   int      // waypoints on the outer ring (minimum 3, zero means DefaultNodes)
	Chords  int      // extra cross-links that create forks (zero means DefaultChords)
	TileIDs []string // tile descriptors sprinkled over interior waypoints
}

// Generate builds a seeded ring-and-chords board: waypoints laid out on a
// circle, connected both ways around the ring, with a handful of chords
// cutting across it. Chord endpoints become forks. Equal seeds yield
// identical boards.
func Generate(ctx context.Context, rng *rand.Rand, opts GenerateOptions) (*Graph, error) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	startTime := time.Now()

	nodes := opts.Nodes
	if nodes < 3 {
		nodes = DefaultNodes
	}
	chords := opts.Chords
	if chords <= 0 {
		chords = DefaultChords
	}
	// A triangle admits no chord: every skip-link duplicates a ring edge.
	if nodes <= 3 {
		chords = 0
	}

	g := New()
	g.Start = 0

	// Ring waypoints on a circle, id = ring index
	for i := 0; i < nodes; i++ {
		angle := 2 * math.Pi * float64(i) / float64(nodes)
		pos := Vec2{
			X: defaultRadius * math.Cos(angle),
			Y: defaultRadius * math.Sin(angle),
		}
		tileID := ""
		if i != 0 && len(opts.TileIDs) > 0 && rng.Intn(3) == 0 {
			tileID = opts.TileIDs[rng.Intn(len(opts.TileIDs))]
		}
		if _, err := g.Add(i, pos, tileID); err != nil {
			return nil, err
		}
	}

	// Both directions around the ring, bowed outward
	for i := 0; i < nodes; i++ {
		next := (i + 1) % nodes
		if err := g.Connect(i, next, bowControl(g, i, next)); err != nil {
			return nil, err
		}
		if err := g.Connect(next, i, bowControl(g, next, i)); err != nil {
			return nil, err
		}
	}

	// Chords: skip-links across the ring. Retry on duplicates rather than
	// tracking used pairs; the board is small.
	edgeCount := 2 * nodes
	for placed, attempts := 0, 0; placed < chords && attempts < chords*20; attempts++ {
		from := rng.Intn(nodes)
		skip := 2 + rng.Intn(nodes-3)
		to := (from + skip) % nodes
		if _, exists := g.ConnectionTo(g.Waypoint(from), to); exists {
			continue
		}
		if err := g.Connect(from, to, bowControl(g, from, to)); err != nil {
			continue
		}
		if err := g.Connect(to, from, bowControl(g, to, from)); err != nil {
			return nil, err
		}
		edgeCount += 2
		placed++
	}

	span.SetAttributes(
		attribute.Int("board.waypoints", g.Count()),
		attribute.Int("board.edges", edgeCount),
		attribute.Int64("board.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g, nil
}

// bowControl returns a control offset perpendicular to the from->to segment,
// giving each direction of an edge pair its own visible curve.
func bowControl(g *Graph, from, to int) Vec2 {
	a := g.Waypoint(from).Pos
	b := g.Waypoint(to).Pos
	mid := Vec2{X: (b.X - a.X) / 2, Y: (b.Y - a.Y) / 2}
	// Rotate the half-segment 90 degrees and scale it down.
	perp := Vec2{X: -mid.Y, Y: mid.X}.Scale(curveBow)
	return mid.Add(perp)
}
