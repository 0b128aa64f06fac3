package boarddata

import (
	"fmt"

	"github.com/samdwyer/boardwalk/internal/tile"
)

// TileDef defines a tile behavior loaded from JSON.
type TileDef struct {
	ID            string `json:"id"`            // Unique identifier referenced by board nodes
	Kind          string `json:"kind"`          // One of: normal, event, zone, gate
	TriggerOnPass bool   `json:"triggerOnPass"` // Fire on intermediate steps too
	Message       string `json:"message"`       // Shown when the tile fires
	Zone          string `json:"zone"`          // Destination for zone tiles
	Color         string `json:"color"`         // Hex display color (e.g., "#80C0FF")
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := Load[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}

// Descriptor converts the definition into a runtime tile descriptor.
func (d *TileDef) Descriptor() (*tile.Descriptor, error) {
	kind, err := tile.ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", d.ID, err)
	}
	return &tile.Descriptor{
		ID:            d.ID,
		Kind:          kind,
		TriggerOnPass: d.TriggerOnPass,
		Message:       d.Message,
		Zone:          d.Zone,
		Color:         d.Color,
	}, nil
}
