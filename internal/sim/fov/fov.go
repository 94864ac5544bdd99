// Package fov computes line-of-sight and field-of-view over a tile grid.
// Opaque tiles (walls) block sight; the endpoints themselves are always
// considered visible so an agent standing next to a wall can see it.
package fov

type Grid interface {
	InBounds(x, y int) bool
	Opaque(x, y int) bool
}

type Point struct{ X, Y int }

// LineOfSight reports whether b is visible from a, walking a Bresenham line
// and stopping at the first opaque interior tile.
func LineOfSight(g Grid, a, b Point) bool {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 == x1 && y0 == y1 {
			return true
		}
		// Interior opaque tiles block; the start tile never does, and the
		// target is reported visible even when opaque (you can see a wall).
		if !(x0 == a.X && y0 == a.Y) && g.Opaque(x0, y0) {
			return false
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Visible returns the set of in-bounds points within the square radius that
// have line of sight from the origin.
func Visible(g Grid, from Point, radius int) map[Point]bool {
	out := map[Point]bool{}
	if radius < 0 {
		return out
	}
	for y := from.Y - radius; y <= from.Y+radius; y++ {
		for x := from.X - radius; x <= from.X+radius; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			p := Point{x, y}
			if LineOfSight(g, from, p) {
				out[p] = true
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
