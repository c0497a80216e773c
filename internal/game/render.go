package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// hudRows is the number of screen rows above the level.
const hudRows = 1

// palette holds per-theme tile colors.
type palette struct {
	solid  core.Color
	hazard core.Color
}

func themePalette(t levelgen.Theme) palette {
	switch t {
	case levelgen.Underground:
		return palette{solid: core.ColorBlue, hazard: core.ColorRed}
	case levelgen.Castle:
		return palette{solid: core.ColorGray, hazard: core.ColorOrange}
	default:
		return palette{solid: core.ColorBrown, hazard: core.ColorRed}
	}
}

// Render draws a view. Every tile is cellsPerTile columns by one row and the
// HUD takes the top row. The level is centred horizontally.
func Render(dst *core.Screen, v View, cellsPerTile int) {
	if cellsPerTile < 1 {
		cellsPerTile = 1
	}
	switch v.State {
	case StateMenu:
		renderMenu(dst, v)
		return
	case StateGameOver:
		renderGameOver(dst, v)
		return
	}

	renderHUD(dst, v)
	originX := 0
	if len(v.Tiles) > 0 {
		visible := (len(v.Tiles[0]) - 1) * cellsPerTile
		originX = max(0, (dst.Width()-visible)/2)
	}
	renderTiles(dst, v, originX, cellsPerTile)
	renderEntities(dst, v, originX, cellsPerTile)

	switch {
	case v.State == StateLevelCleared:
		renderOverlay(dst, fmt.Sprintf("WORLD %d-%d CLEAR!", v.World, v.Level), "")
	case v.State == StatePlayerDied:
		renderOverlay(dst, v.Player.Name+" DOWN", "")
	case v.Paused:
		renderOverlay(dst, "PAUSED", "Press P to continue")
	}
}

func renderHUD(dst *core.Screen, v View) {
	x := 1
	dst.DrawText(x, 0, v.HUD.WorldLevel)
	x += len(v.HUD.WorldLevel) + 3
	for _, c := range v.HUD.Characters {
		label := fmt.Sprintf("%s:%d", c.Name, c.Lives)
		if c.Active {
			label = ">" + label
		}
		dst.DrawTextColored(x, 0, label, c.Color)
		x += len(label) + 2
	}
	dst.DrawTextColored(x+1, 0, fmt.Sprintf("COINS:%d", v.HUD.Coins), core.ColorBrightYellow)
}

// tileGlyph returns the glyph and color of a tile at a column offset within
// the tile (0 for the left cell).
func tileGlyph(k tilemap.Kind, pal palette, poleTop bool, part int) (rune, core.Color) {
	switch k {
	case tilemap.Solid:
		return '█', pal.solid
	case tilemap.Hazard:
		return '≈', pal.hazard
	case tilemap.Collectible:
		if part == 0 {
			return '(', core.ColorBrightYellow
		}
		return ')', core.ColorBrightYellow
	case tilemap.Goal:
		if part == 0 {
			return '│', core.ColorGreen
		}
		if poleTop {
			return '▶', core.ColorBrightRed
		}
		return ' ', core.ColorDefault
	default:
		return ' ', core.ColorDefault
	}
}

func renderTiles(dst *core.Screen, v View, originX, cellsPerTile int) {
	pal := themePalette(v.Theme)
	sub := int(v.CameraX) % tileSize * cellsPerTile / tileSize

	for row, line := range v.Tiles {
		for col, k := range line {
			poleTop := k == tilemap.Goal && (row == 0 || v.Tiles[row-1][col] != tilemap.Goal)
			for part := 0; part < cellsPerTile; part++ {
				x := originX + col*cellsPerTile + part - sub
				r, c := tileGlyph(k, pal, poleTop, part)
				dst.SetColored(x, row+hudRows, r, c)
			}
		}
	}

	for _, rw := range v.Rewards {
		glyph, color := '?', core.ColorBrightYellow
		if rw.Used {
			glyph, color = '▪', core.ColorBrown
		}
		for part := 0; part < cellsPerTile; part++ {
			x := originX + rw.Col*cellsPerTile + part - sub
			dst.SetColored(x, rw.Row+hudRows, glyph, color)
		}
	}
}

func renderEntities(dst *core.Screen, v View, originX, cellsPerTile int) {
	place := func(r core.RectF) core.Rect {
		cell := r.Cell(v.CameraX, tileSize, cellsPerTile)
		cell.X += originX
		cell.Y += hudRows
		return cell
	}

	for _, it := range v.Items {
		dst.DrawRect(place(it.Rect), '♣', core.ColorMagenta)
	}
	for _, e := range v.Enemies {
		if !e.Alive {
			continue
		}
		dst.DrawRect(place(e.Rect), '▆', core.ColorOrange)
	}

	// Flicker while invulnerable
	p := v.Player
	if p.Invulnerable > 0 && p.Invulnerable%10 < 5 {
		return
	}
	dst.DrawRect(place(p.Rect), '█', p.Color)
}

func renderMenu(dst *core.Screen, v View) {
	top := max(1, dst.Height()/2-4)
	dst.DrawTextCentered(top, "SELECT FILE (1-3):")
	for i, sl := range v.Slots {
		dst.DrawTextCentered(top+2+i, fmt.Sprintf("%s. %-11s", sl.ID, sl.Label))
	}
	dst.DrawTextCentered(top+7, "Q to quit")
}

func renderGameOver(dst *core.Screen, v View) {
	msg := "GAME OVER"
	if v.Won {
		msg = "YOU WIN! CONGRATULATIONS!"
	}
	prompt := "Press any key to return to menu"
	if v.Mode == ModePractice {
		prompt = "Press any key to try again"
	}
	if v.Timer > 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	renderOverlay(dst, msg, prompt)
}

// renderOverlay draws a centred box with up to two lines of text.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	if line2 == "" {
		h = 3
	}
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	if line2 != "" {
		dst.DrawTextCentered(box.Y+3, line2)
	}
}
