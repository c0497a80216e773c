package physics

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// testGrid is 8x6 with a solid floor on row 5, a wall at column 5 and a
// ceiling block at (2,1).
func testGrid() *tilemap.Grid {
	return tilemap.FromRows([]string{
		"........",
		"..#.....",
		"........",
		".....#..",
		".....#..",
		"########",
	})
}

func TestFallOntoSolidIsFlush(t *testing.T) {
	r := NewResolver(testGrid())
	b := &Body{X: 16, Y: 40, W: 16, H: 16}

	for i := 0; i < 60; i++ {
		b.ApplyGravity(0.5, 10)
		r.Step(b, false)
	}

	if !b.Grounded {
		t.Fatal("body should be grounded")
	}
	if b.VY != 0 {
		t.Errorf("VY = %v, want 0", b.VY)
	}
	if b.Bottom() != 80 {
		t.Errorf("bottom = %v, want flush at 80", b.Bottom())
	}
}

func TestLandingSnapsFromAnySpeed(t *testing.T) {
	for _, vy := range []float64{0, 0.5, 3, 7.5, 10} {
		r := NewResolver(testGrid())
		b := &Body{X: 16, Y: 80 - 16 - vy + 0.25, W: 16, H: 16, VY: vy}
		res := r.MoveVertical(b)
		if !res.Landed || !b.Grounded || b.Bottom() != 80 || b.VY != 0 {
			t.Errorf("vy=%v: landed=%v grounded=%v bottom=%v vy=%v", vy, res.Landed, b.Grounded, b.Bottom(), b.VY)
		}
	}
}

func TestWallStopsPlayer(t *testing.T) {
	g := testGrid()
	r := NewResolver(g)
	b := &Body{X: 60, Y: 64, W: 16, H: 16, VX: 3}

	for i := 0; i < 10; i++ {
		res := r.MoveHorizontal(b, false)
		if res.Blocked {
			if b.VX != 0 {
				t.Errorf("VX = %v after wall, want 0", b.VX)
			}
			break
		}
	}
	if b.X+b.W != 80 {
		t.Errorf("right edge = %v, want flush at 80", b.X+b.W)
	}
	wall := tilemap.TileRect(5, 4)
	if b.Rect().Intersects(wall) {
		t.Error("body overlaps the wall tile")
	}
}

func TestWallFromRight(t *testing.T) {
	r := NewResolver(testGrid())
	b := &Body{X: 98, Y: 64, W: 16, H: 16, VX: -3}
	for i := 0; i < 5; i++ {
		r.MoveHorizontal(b, false)
	}
	if b.X != 96 {
		t.Errorf("X = %v, want flush at 96", b.X)
	}
}

func TestBounceReversesDirection(t *testing.T) {
	r := NewResolver(testGrid())
	b := &Body{X: 62, Y: 64, W: 16, H: 16, VX: 1}
	for i := 0; i < 5; i++ {
		r.MoveHorizontal(b, true)
	}
	if b.VX != -1 {
		t.Errorf("VX = %v, want -1 after bounce", b.VX)
	}
	if b.X+b.W > 80 {
		t.Errorf("right edge = %v, overlaps wall", b.X+b.W)
	}
}

func TestTallBodyHitsMidBlock(t *testing.T) {
	// A 40-tall body whose top and bottom probes miss the single block at row 3.
	g := tilemap.FromRows([]string{
		"......",
		"......",
		"......",
		"...#..",
		"......",
		"......",
		"######",
	})
	r := NewResolver(g)
	b := &Body{X: 30, Y: 40, W: 16, H: 40, VX: 3}
	res := r.MoveHorizontal(b, false)
	if !res.Blocked || res.Col != 3 {
		t.Errorf("result = %+v, want blocked at column 3", res)
	}
}

func TestHeadBump(t *testing.T) {
	r := NewResolver(testGrid())
	b := &Body{X: 32, Y: 34, W: 16, H: 16, VY: -9}
	res := r.MoveVertical(b)
	if !res.HeadBump {
		t.Fatal("expected head bump")
	}
	if res.BumpCol != 2 || res.BumpRow != 1 {
		t.Errorf("bump cell = (%d,%d), want (2,1)", res.BumpCol, res.BumpRow)
	}
	if b.Y != 32 || b.VY != 0 {
		t.Errorf("Y=%v VY=%v, want 32 and 0", b.Y, b.VY)
	}
	if b.Grounded {
		t.Error("head bump must not ground the body")
	}
}

func TestHeadBumpPrefersReward(t *testing.T) {
	g := tilemap.FromRows([]string{
		"......",
		"..##..",
		"......",
		"......",
	})
	g.MarkReward(3, 1)
	r := NewResolver(g)
	b := &Body{X: 40, Y: 34, W: 16, H: 16, VY: -5}
	res := r.MoveVertical(b)
	if res.BumpCol != 3 {
		t.Errorf("BumpCol = %d, want reward column 3", res.BumpCol)
	}
}

func TestHazardHoldsAndReports(t *testing.T) {
	g := tilemap.FromRows([]string{
		"....",
		"....",
		"LLLL",
	})
	r := NewResolver(g)
	b := &Body{X: 16, Y: 14, W: 16, H: 16, VY: 4}
	res := r.MoveVertical(b)
	if !res.Hazard || !res.Landed {
		t.Errorf("result = %+v, want landed on hazard", res)
	}
	if !b.Grounded || b.Bottom() != 32 {
		t.Errorf("grounded=%v bottom=%v, want resting at 32", b.Grounded, b.Bottom())
	}
}

func TestOutOfBounds(t *testing.T) {
	g := tilemap.FromRows([]string{
		"....",
		"....",
		"#..#",
	})
	r := NewResolver(g)
	b := &Body{X: 20, Y: 20, W: 16, H: 16}

	fell := false
	for i := 0; i < 100 && !fell; i++ {
		b.ApplyGravity(0.5, 10)
		fell = r.Step(b, false).OutOfBounds
	}
	if !fell {
		t.Fatal("body over a gap should fall out of bounds")
	}
	if b.Y <= g.PixelHeight() {
		t.Errorf("Y = %v, want below %v", b.Y, g.PixelHeight())
	}
}

func TestResizeKeepsBottom(t *testing.T) {
	b := &Body{X: 0, Y: 64, W: 16, H: 16}
	b.Resize(32)
	if b.Y != 48 || b.Bottom() != 80 {
		t.Errorf("after grow Y=%v bottom=%v", b.Y, b.Bottom())
	}
	b.Resize(16)
	if b.Y != 64 {
		t.Errorf("after shrink Y=%v, want 64", b.Y)
	}
}

func TestGravityTerminal(t *testing.T) {
	b := &Body{}
	for i := 0; i < 100; i++ {
		b.ApplyGravity(0.5, 10)
	}
	if b.VY != 10 {
		t.Errorf("VY = %v, want clamp at 10", b.VY)
	}
}
