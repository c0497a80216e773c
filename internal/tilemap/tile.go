// Package tilemap holds the level tile grid: an enumerated tile kind per cell
// in a dense row-major array with bounds-checked accessors.
package tilemap

// TileSize is the edge of one tile in pixel units.
const TileSize = 16

// Kind classifies a grid cell.
type Kind uint8

const (
	Empty Kind = iota
	Solid
	Hazard
	Goal
	Collectible
	SpawnMarker

	// None is returned for queries outside the grid. It is never stored.
	None Kind = 255
)

// String returns a human-readable name for the tile kind.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Solid:
		return "Solid"
	case Hazard:
		return "Hazard"
	case Goal:
		return "Goal"
	case Collectible:
		return "Collectible"
	case SpawnMarker:
		return "SpawnMarker"
	case None:
		return "None"
	default:
		return "Unknown"
	}
}

// Rune is the ASCII glyph used by level dumps.
func (k Kind) Rune() rune {
	switch k {
	case Solid:
		return '#'
	case Hazard:
		return 'L'
	case Goal:
		return 'F'
	case Collectible:
		return 'o'
	case SpawnMarker:
		return 'G'
	default:
		return '.'
	}
}

// Blocks reports whether bodies cannot pass through the tile.
func (k Kind) Blocks() bool {
	return k == Solid
}
