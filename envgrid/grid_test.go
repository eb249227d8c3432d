package envgrid

import "testing"

func TestIdxClampsOutOfRange(t *testing.T) {
	g := New(4, 100)

	cases := []struct {
		x, y, want int
	}{
		{-1, 0, 0},
		{0, -1, 0},
		{4, 0, 3},
		{0, 4, 3 * 4},
		{2, 2, 2*4 + 2},
	}
	for _, c := range cases {
		if got := g.Idx(c.x, c.y); got != c.want {
			t.Errorf("Idx(%d,%d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestWorldToCellClampsToGrid(t *testing.T) {
	g := New(4, 100)

	cx, cy := g.WorldToCell(-50, -50)
	if cx != 0 || cy != 0 {
		t.Errorf("expected negative world coords to clamp to (0,0), got (%d,%d)", cx, cy)
	}

	cx, cy = g.WorldToCell(1000, 1000)
	if cx != g.R-1 || cy != g.R-1 {
		t.Errorf("expected beyond-world coords to clamp to (%d,%d), got (%d,%d)", g.R-1, g.R-1, cx, cy)
	}
}

func TestSampleBilinearOnUniformFieldReturnsConstant(t *testing.T) {
	g := New(8, 80)
	for i := range g.Alpha {
		g.Alpha[i] = 0.5
	}

	for _, pos := range [][2]float32{{0, 0}, {40, 40}, {79, 79}, {10.5, 63.2}} {
		got := g.SampleBilinear(g.Alpha, pos[0], pos[1])
		if got != 0.5 {
			t.Errorf("SampleBilinear at (%v,%v) on a uniform field = %v, want 0.5", pos[0], pos[1], got)
		}
	}
}

func TestSampleBilinearInterpolatesBetweenCells(t *testing.T) {
	g := New(2, 20)
	// Cell (0,0)=0, cell (1,0)=1, row 1 identical to row 0.
	g.Alpha[g.Idx(0, 0)] = 0
	g.Alpha[g.Idx(1, 0)] = 1
	g.Alpha[g.Idx(0, 1)] = 0
	g.Alpha[g.Idx(1, 1)] = 1

	mid := g.SampleBilinear(g.Alpha, 10, 5) // halfway across the two columns
	if mid < 0.4 || mid > 0.6 {
		t.Errorf("expected a midpoint sample near 0.5, got %v", mid)
	}
}

func TestAddClampedClampsToUnitRange(t *testing.T) {
	ch := []float32{0.9, 0.05}
	AddClamped(ch, 0, 0.5)
	AddClamped(ch, 1, -0.5)

	if ch[0] != 1 {
		t.Errorf("expected upper clamp to 1, got %v", ch[0])
	}
	if ch[1] != 0 {
		t.Errorf("expected lower clamp to 0, got %v", ch[1])
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Errorf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClampAllClampsAllChannels(t *testing.T) {
	g := New(2, 20)
	for i := range g.Alpha {
		g.Alpha[i] = 5
		g.Beta[i] = -5
		g.Gamma[i] = 2
		g.TrailR[i] = -2
		g.TrailG[i] = 2
		g.TrailB[i] = 0.3
	}
	g.ClampAll()

	for i := range g.Alpha {
		if g.Alpha[i] != 1 || g.Beta[i] != 0 || g.Gamma[i] != 1 {
			t.Fatalf("cell %d: alpha/beta/gamma not clamped: %v %v %v", i, g.Alpha[i], g.Beta[i], g.Gamma[i])
		}
		if g.TrailR[i] != 0 || g.TrailG[i] != 1 || g.TrailB[i] != 0.3 {
			t.Fatalf("cell %d: trail channels not clamped: %v %v %v", i, g.TrailR[i], g.TrailG[i], g.TrailB[i])
		}
	}
}
