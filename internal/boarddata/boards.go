package boarddata

import (
	"fmt"

	"github.com/samdwyer/boardwalk/internal/board"
)

// ConnDef defines one curved edge in boards.json. cx/cy is the control
// offset from the source node.
type ConnDef struct {
	To int     `json:"to"`
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
}

// NodeDef defines one waypoint in boards.json.
type NodeDef struct {
	ID          int       `json:"id"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Tile        string    `json:"tile"` // tile descriptor ID, empty for none
	Connections []ConnDef `json:"connections"`
}

// BoardDef defines one authored board.
type BoardDef struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Start int       `json:"start"`
	Nodes []NodeDef `json:"nodes"`
}

// BoardsFile represents the structure of boards.json.
type BoardsFile struct {
	Boards []BoardDef `json:"boards"`
}

// LoadBoards loads board definitions from the embedded boards.json file.
func LoadBoards() ([]BoardDef, error) {
	file, err := Load[BoardsFile]("boards.json")
	if err != nil {
		return nil, err
	}
	return file.Boards, nil
}

// Build converts the definition into a runtime graph. Node and edge order
// follow the authoring order, which fork presentation relies on.
func (d *BoardDef) Build() (*board.Graph, error) {
	g := board.New()
	for _, n := range d.Nodes {
		if _, err := g.Add(n.ID, board.Vec2{X: n.X, Y: n.Y}, n.Tile); err != nil {
			return nil, fmt.Errorf("board %s: %w", d.ID, err)
		}
	}
	for _, n := range d.Nodes {
		for _, c := range n.Connections {
			if err := g.Connect(n.ID, c.To, board.Vec2{X: c.CX, Y: c.CY}); err != nil {
				return nil, fmt.Errorf("board %s: %w", d.ID, err)
			}
		}
	}
	if g.Waypoint(d.Start) == nil {
		return nil, fmt.Errorf("board %s: start waypoint %d does not exist", d.ID, d.Start)
	}
	g.Start = d.Start
	return g, nil
}

// Validate checks that every tile reference on the board resolves in the
// given registry.
func (d *BoardDef) Validate(tiles *TileRegistry) error {
	for _, n := range d.Nodes {
		if n.Tile == "" {
			continue
		}
		if tiles.GetByID(n.Tile) == nil {
			return fmt.Errorf("board %s: node %d references unknown tile %q", d.ID, n.ID, n.Tile)
		}
	}
	return nil
}
