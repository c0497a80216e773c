package tilemap

import "testing"

func TestGridAtOutOfBounds(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(1, 1, Solid)

	tests := []struct {
		name     string
		col, row int
		want     Kind
	}{
		{"inside solid", 1, 1, Solid},
		{"inside empty", 0, 0, Empty},
		{"left of grid", -1, 1, None},
		{"right of grid", 4, 1, None},
		{"above grid", 1, -1, None},
		{"below grid", 1, 3, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.col, tt.row); got != tt.want {
				t.Errorf("At(%d,%d) = %s, want %s", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestGridSetOutOfBoundsIgnored(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(5, 5, Solid)
	if g.Count(Solid) != 0 {
		t.Errorf("out-of-bounds write should be ignored, got %d solid", g.Count(Solid))
	}
}

func TestGridAtPixel(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 2, Hazard)

	if got := g.AtPixel(16, 32); got != Hazard {
		t.Errorf("AtPixel(16,32) = %s, want Hazard", got)
	}
	if got := g.AtPixel(31.9, 47.9); got != Hazard {
		t.Errorf("AtPixel(31.9,47.9) = %s, want Hazard", got)
	}
	if got := g.AtPixel(-0.5, 0); got != None {
		t.Errorf("negative pixel should floor to column -1, got %s", got)
	}
	if g.PixelWidth() != 48 || g.PixelHeight() != 48 {
		t.Errorf("pixel size = %vx%v, want 48x48", g.PixelWidth(), g.PixelHeight())
	}
}

func TestFromRowsRoundTrip(t *testing.T) {
	rows := []string{
		"....F",
		"..o.F",
		".G..F",
		"##L##",
	}
	g := FromRows(rows)
	if g.W != 5 || g.H != 4 {
		t.Fatalf("size = %dx%d, want 5x4", g.W, g.H)
	}
	got := g.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], rows[i])
		}
	}
	if g.Count(Goal) != 3 {
		t.Errorf("Count(Goal) = %d, want 3", g.Count(Goal))
	}
}

func TestRewardSingleUse(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 0, Solid)
	g.MarkReward(1, 0)
	g.MarkReward(2, 0) // not solid, ignored

	if _, ok := g.Reward(2, 0); ok {
		t.Error("reward on empty cell should not exist")
	}
	if !g.UseReward(1, 0) {
		t.Fatal("first use should succeed")
	}
	if g.UseReward(1, 0) {
		t.Error("second use should fail")
	}
	if g.At(1, 0) != Solid {
		t.Error("reward block must stay solid after use")
	}
	if g.Rows()[0] != ".u." {
		t.Errorf("used reward dump = %q, want %q", g.Rows()[0], ".u.")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, Solid)
	g.MarkReward(0, 0)

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone should equal source")
	}
	c.Set(1, 1, Collectible)
	c.UseReward(0, 0)

	if g.At(1, 1) != Empty {
		t.Error("mutating clone changed source tiles")
	}
	if r, _ := g.Reward(0, 0); r.Used {
		t.Error("mutating clone changed source reward")
	}
	if c.Equal(g) {
		t.Error("grids should differ after mutation")
	}
}

func TestWindowClipped(t *testing.T) {
	g := NewGrid(5, 2)
	g.Set(4, 1, Solid)

	w := g.Window(3, 10)
	if len(w) != 2 || len(w[0]) != 2 {
		t.Fatalf("window size = %dx%d, want 2 rows of 2", len(w), len(w[0]))
	}
	if w[1][1] != Solid {
		t.Errorf("window[1][1] = %s, want Solid", w[1][1])
	}
}
