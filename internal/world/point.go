package world

import "fmt"

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// String formats the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Distance2 returns the squared Euclidean distance to other.
func (p Point) Distance2(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Chebyshev returns the ring radius at which other is first seen from p.
func (p Point) Chebyshev(other Point) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
