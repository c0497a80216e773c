package levelgen

import "github.com/vovakirdan/tui-platformer/internal/tilemap"

// Layout constants.
const (
	Height        = 15
	BaseWidth     = 60
	WidthPerWorld = 5
	SafeColumns   = 3 // floor columns kept solid at each end
	MinPitStart   = 5
	MaxPitLen     = 5
	PoleHeight    = 4
	MaxEnemies    = 5
)

// Width returns the level width in tiles for a world.
func Width(world int) int {
	return BaseWidth + WidthPerWorld*world
}

// Generate builds the layout for (world, slot).
func Generate(world, slot int) (*Level, error) {
	if slot < 1 || slot > 4 {
		return nil, ErrInvalidLevelSlot
	}
	if world < 1 {
		return nil, ErrInvalidWorld
	}

	theme := ThemeForSlot(slot)
	w := Width(world)
	g := tilemap.NewGrid(w, Height)
	floor := Height - 1

	for col := 0; col < w; col++ {
		g.Set(col, floor, tilemap.Solid)
		if theme == Underground {
			g.Set(col, 0, tilemap.Solid)
		}
	}

	pits := placePits(g, world, theme)
	placeGoal(g)
	if theme != Castle {
		placeStaircase(g, world)
	}
	switch theme {
	case Underground:
		placePlatform(g)
	case Overworld:
		placeCluster(g)
	}
	placePitCoins(g, pits)

	lvl := &Level{
		World: world,
		Slot:  slot,
		Theme: theme,
		Grid:  g,
		Pits:  pits,
	}
	lvl.Spawns = placeEnemies(lvl)
	return lvl, nil
}

func pitCount(world int, theme Theme) int {
	switch {
	case theme == Underground:
		return 1
	case theme == Overworld && world >= 5:
		return 3
	default:
		return 2
	}
}

// placePits cuts evenly spaced gaps into the floor, then restores the safe
// columns at both ends. Returned spans cover only columns left open.
func placePits(g *tilemap.Grid, world int, theme Theme) []Span {
	n := pitCount(world, theme)
	floor := g.H - 1
	segment := g.W / (n + 1)
	length := min(MaxPitLen, 2+world%3)

	fill := tilemap.Empty
	if theme == Castle {
		fill = tilemap.Hazard
	}

	raw := make([]Span, 0, n)
	for i := 1; i <= n; i++ {
		start := max(segment*i-3, MinPitStart)
		end := start + length - 1
		if end >= g.W-2 {
			end = g.W - 3
			start = end - length + 1
		}
		for col := start; col <= end; col++ {
			g.Set(col, floor, fill)
		}
		raw = append(raw, Span{Start: start, End: end})
	}

	for col := 0; col < SafeColumns; col++ {
		g.Set(col, floor, tilemap.Solid)
		g.Set(g.W-1-col, floor, tilemap.Solid)
	}

	pits := make([]Span, 0, len(raw))
	for _, p := range raw {
		p.Start = max(p.Start, SafeColumns)
		p.End = min(p.End, g.W-SafeColumns-1)
		if p.Start <= p.End {
			pits = append(pits, p)
		}
	}
	return pits
}

// placeGoal puts the pole in the last column, its base one row above the floor.
func placeGoal(g *tilemap.Grid) {
	base := g.H - 2
	for i := 0; i < PoleHeight; i++ {
		g.Set(g.W-1, base-i, tilemap.Goal)
	}
}

// placeStaircase builds a filled staircase ending two columns before the pole.
func placeStaircase(g *tilemap.Grid, world int) {
	h := 3 + world/3
	floor := g.H - 1
	first := g.W - 2 - h
	for i := 0; i < h; i++ {
		for step := 1; step <= i+1; step++ {
			g.Set(first+i, floor-step, tilemap.Solid)
		}
	}
}

func placePlatform(g *tilemap.Grid) {
	row := g.H - 5
	start := g.W / 3
	for col := start; col < start+8; col++ {
		g.Set(col, row, tilemap.Solid)
	}
}

// placeCluster adds a floating row of five blocks with a reward block in the
// middle and a collectible above it.
func placeCluster(g *tilemap.Grid) {
	row := g.H - 6
	start := g.W/2 - 2
	for col := start; col < start+5; col++ {
		g.Set(col, row, tilemap.Solid)
	}
	mid := start + 2
	g.MarkReward(mid, row)
	g.Set(mid, row-1, tilemap.Collectible)
}

func placePitCoins(g *tilemap.Grid, pits []Span) {
	row := max(0, g.H-5)
	for _, p := range pits {
		for col := p.Start; col <= p.End; col++ {
			g.Set(col, row, tilemap.Collectible)
		}
	}
}

// placeEnemies drops spawn markers at evenly spaced columns. Rejected
// candidates are skipped, never moved.
func placeEnemies(l *Level) []Spawn {
	g := l.Grid
	n := min(MaxEnemies, 2+(l.World-1)/3)
	floor := g.H - 1

	var spawns []Spawn
	for i := 1; i <= n; i++ {
		col := i * g.W / (n + 1)
		col = max(1, min(col, g.W-2))
		if l.InPit(col) || col >= g.W-SafeColumns {
			continue
		}
		if g.At(col, floor) != tilemap.Solid {
			continue
		}
		g.Set(col, floor-1, tilemap.SpawnMarker)
		spawns = append(spawns, Spawn{Col: col, Row: floor - 1})
	}
	return spawns
}
