package tui

// railGeometry places the seek rail on the terminal grid, one cell per unit.
type railGeometry struct {
	left, width int
}

func (g *railGeometry) TrackWidth() float64  { return float64(g.width) }
func (g *railGeometry) HandleWidth() float64 { return 1 }
func (g *railGeometry) LeftEdge() float64    { return float64(g.left) }

// contains reports whether a column lies on the rail.
func (g *railGeometry) contains(x int) bool {
	return x >= g.left && x < g.left+g.width
}
