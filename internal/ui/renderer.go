package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/boardwalk/internal/board"
)

// edgeSamples is how many points each curved edge is traced with. Enough
// for terminal resolution; overdraw between samples is harmless.
const edgeSamples = 32

// Sprite is one token drawn on top of the board. Pos is in board
// coordinates; a token mid-traversal draws at its animator position.
type Sprite struct {
	Pos   board.Vec2
	Glyph rune
	Color tcell.Color
}

// Frame is everything one draw call needs.
type Frame struct {
	Graph     *board.Graph
	NodeColor func(tileID string) tcell.Color
	Sprites   []Sprite

	// Choices labels candidate waypoints with 1-based digits while a fork
	// is open. Empty outside fork selection.
	Choices []int

	Status string
	Hint   string
}

// Renderer handles drawing the board to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one complete frame: edges, then nodes, then sprites, then
// the status lines.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	w, h := r.screen.Size()
	boardH := h - 2
	if boardH < 1 || w < 4 || f.Graph == nil {
		r.screen.Show()
		return
	}
	p := fitProjection(f.Graph, w, boardH)

	r.drawEdges(f.Graph, p)
	r.drawNodes(f, p)
	r.drawChoices(f, p)

	for _, s := range f.Sprites {
		x, y := p.cell(s.Pos)
		style := tcell.StyleDefault.Foreground(s.Color).Bold(true)
		r.screen.SetContent(x, y, s.Glyph, style)
	}

	r.drawLine(f.Status, h-2, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawLine(f.Hint, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))

	r.screen.Show()
}

func (r *Renderer) drawEdges(g *board.Graph, p projection) {
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for _, wp := range g.Waypoints() {
		for _, c := range wp.Conns {
			for i := 1; i < edgeSamples; i++ {
				t := float64(i) / float64(edgeSamples)
				x, y := p.cell(g.PointOn(wp, c, t))
				r.screen.SetContent(x, y, '.', style)
			}
		}
	}
}

func (r *Renderer) drawNodes(f Frame, p projection) {
	for _, wp := range f.Graph.Waypoints() {
		color := tcell.ColorGray
		if f.NodeColor != nil {
			color = f.NodeColor(wp.TileID)
		}
		glyph := 'o'
		if wp.ID == f.Graph.Start {
			glyph = 'O'
		}
		x, y := p.cell(wp.Pos)
		r.screen.SetContent(x, y, glyph, tcell.StyleDefault.Foreground(color))
	}
}

func (r *Renderer) drawChoices(f Frame, p projection) {
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for i, id := range f.Choices {
		if i > 8 {
			break
		}
		wp := f.Graph.Waypoint(id)
		if wp == nil {
			continue
		}
		x, y := p.cell(wp.Pos)
		r.screen.SetContent(x+1, y, rune('1'+i), style)
	}
}

func (r *Renderer) drawLine(msg string, y int, style tcell.Style) {
	col := 0
	for _, ch := range msg {
		r.screen.SetContent(col, y, ch, style)
		col++
	}
}

// projection maps board coordinates onto terminal cells, fitted to the
// graph's bounding box with a small margin.
type projection struct {
	minX, minY     float64
	scaleX, scaleY float64
	margin         int
}

func fitProjection(g *board.Graph, w, h int) projection {
	const margin = 2

	wps := g.Waypoints()
	minX, minY := wps[0].Pos.X, wps[0].Pos.Y
	maxX, maxY := minX, minY
	for _, wp := range wps[1:] {
		minX = min(minX, wp.Pos.X)
		minY = min(minY, wp.Pos.Y)
		maxX = max(maxX, wp.Pos.X)
		maxY = max(maxY, wp.Pos.Y)
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	return projection{
		minX:   minX,
		minY:   minY,
		scaleX: float64(w-1-2*margin) / spanX,
		scaleY: float64(h-1-2*margin) / spanY,
		margin: margin,
	}
}

func (p projection) cell(v board.Vec2) (int, int) {
	x := p.margin + int((v.X-p.minX)*p.scaleX+0.5)
	y := p.margin + int((v.Y-p.minY)*p.scaleY+0.5)
	return x, y
}
