// Package levelgen synthesizes level layouts from a world index and a level
// slot. Generation is pure: the same arguments always yield the same grid.
package levelgen

import (
	"errors"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

var (
	// ErrInvalidLevelSlot is returned when the level slot is outside 1..4.
	ErrInvalidLevelSlot = errors.New("levelgen: level slot must be in 1..4")
	// ErrInvalidWorld is returned when the world index is below 1.
	ErrInvalidWorld = errors.New("levelgen: world must be >= 1")
)

// Theme selects structural and visual variants of a level.
type Theme int

const (
	Overworld Theme = iota
	Underground
	Castle
)

// String returns a human-readable name for the theme.
func (t Theme) String() string {
	switch t {
	case Overworld:
		return "overworld"
	case Underground:
		return "underground"
	case Castle:
		return "castle"
	default:
		return "unknown"
	}
}

// ThemeForSlot maps a level slot to its theme.
func ThemeForSlot(slot int) Theme {
	switch slot {
	case 2:
		return Underground
	case 4:
		return Castle
	default:
		return Overworld
	}
}

// Spawn is the tile position of an enemy spawn marker.
type Spawn struct {
	Col int
	Row int
}

// Span is an inclusive column range on the floor row.
type Span struct {
	Start int
	End   int
}

// Contains reports whether col lies within the span.
func (s Span) Contains(col int) bool {
	return col >= s.Start && col <= s.End
}

// Len returns the number of columns in the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Level is a generated layout ready to be loaded into a session.
type Level struct {
	World  int
	Slot   int
	Theme  Theme
	Grid   *tilemap.Grid
	Spawns []Spawn
	Pits   []Span
}

// FloorRow returns the index of the floor row.
func (l *Level) FloorRow() int {
	return l.Grid.H - 1
}

// InPit reports whether col is inside any pit span.
func (l *Level) InPit(col int) bool {
	for _, p := range l.Pits {
		if p.Contains(col) {
			return true
		}
	}
	return false
}

// ConsumeSpawns scans the grid row by row for spawn markers, clears each one
// to Empty and returns their positions. Spawns is left as generated.
// Calling it again returns nil.
func (l *Level) ConsumeSpawns() []Spawn {
	var out []Spawn
	for row := 0; row < l.Grid.H; row++ {
		for col := 0; col < l.Grid.W; col++ {
			if l.Grid.At(col, row) != tilemap.SpawnMarker {
				continue
			}
			out = append(out, Spawn{Col: col, Row: row})
			l.Grid.Set(col, row, tilemap.Empty)
		}
	}
	return out
}
