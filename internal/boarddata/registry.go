package boarddata

import (
	"errors"

	"github.com/samdwyer/boardwalk/internal/tile"
)

// BoardRegistry holds loaded board definitions.
type BoardRegistry struct {
	boards []BoardDef
}

// NewBoardRegistry creates a registry from loaded board definitions.
func NewBoardRegistry(boards []BoardDef) *BoardRegistry {
	return &BoardRegistry{boards: boards}
}

// LoadBoardRegistry loads and creates a registry from the embedded boards.json.
func LoadBoardRegistry() (*BoardRegistry, error) {
	boards, err := LoadBoards()
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, errors.New("no boards loaded from boards.json")
	}
	return NewBoardRegistry(boards), nil
}

// MustLoadBoardRegistry loads a registry, panicking on error.
func MustLoadBoardRegistry() *BoardRegistry {
	registry, err := LoadBoardRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the board definition with the given ID, or nil if not found.
func (r *BoardRegistry) GetByID(id string) *BoardDef {
	for i := range r.boards {
		if r.boards[i].ID == id {
			return &r.boards[i]
		}
	}
	return nil
}

// Default returns the first board in authoring order.
func (r *BoardRegistry) Default() *BoardDef {
	if len(r.boards) == 0 {
		return nil
	}
	return &r.boards[0]
}

// All returns all board definitions.
func (r *BoardRegistry) All() []BoardDef {
	return r.boards
}

// Count returns the number of boards in the registry.
func (r *BoardRegistry) Count() int {
	return len(r.boards)
}

// =============================================================================
// TileRegistry
// =============================================================================

// TileRegistry holds runtime tile descriptors keyed by ID.
type TileRegistry struct {
	byID map[string]*tile.Descriptor
	all  []*tile.Descriptor
}

// NewTileRegistry creates a registry from loaded tile definitions.
func NewTileRegistry(defs []TileDef) (*TileRegistry, error) {
	registry := &TileRegistry{byID: make(map[string]*tile.Descriptor)}
	for i := range defs {
		desc, err := defs[i].Descriptor()
		if err != nil {
			return nil, err
		}
		registry.byID[desc.ID] = desc
		registry.all = append(registry.all, desc)
	}
	return registry, nil
}

// LoadTileRegistry loads and creates a registry from the embedded tiles.json.
func LoadTileRegistry() (*TileRegistry, error) {
	defs, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no tiles loaded from tiles.json")
	}
	return NewTileRegistry(defs)
}

// MustLoadTileRegistry loads a registry, panicking on error.
func MustLoadTileRegistry() *TileRegistry {
	registry, err := LoadTileRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the tile descriptor with the given ID, or nil if not found.
func (r *TileRegistry) GetByID(id string) *tile.Descriptor {
	return r.byID[id]
}

// All returns all tile descriptors.
func (r *TileRegistry) All() []*tile.Descriptor {
	return r.all
}

// Count returns the number of tile kinds in the registry.
func (r *TileRegistry) Count() int {
	return len(r.all)
}
