package geometry

import "fmt"

// Line is the segment from P1 to P2. Endpoint order is part of its identity.
type Line struct {
	P1 Point
	P2 Point
}

// NewLine returns the line through p1 and p2.
func NewLine(p1, p2 Point) Line {
	return Line{P1: p1, P2: p2}
}

// Direction returns P2-P1 as (dx, dy).
func (l Line) Direction() (float64, float64) {
	return l.P2.X - l.P1.X, l.P2.Y - l.P1.Y
}

// Intersect returns the point where the infinite lines through l and other meet.
// Parallel (or coincident) lines fail with ErrParallelLines; the determinant is
// compared against exactly zero.
func (l Line) Intersect(other Line) (Point, error) {
	xdiff := [2]float64{l.P1.X - l.P2.X, other.P1.X - other.P2.X}
	ydiff := [2]float64{l.P1.Y - l.P2.Y, other.P1.Y - other.P2.Y}

	div := det(xdiff, ydiff)
	if div == 0 {
		return Point{}, fmt.Errorf("%w: %v-%v and %v-%v", ErrParallelLines, l.P1, l.P2, other.P1, other.P2)
	}

	d := [2]float64{
		det([2]float64{l.P1.X, l.P1.Y}, [2]float64{l.P2.X, l.P2.Y}),
		det([2]float64{other.P1.X, other.P1.Y}, [2]float64{other.P2.X, other.P2.Y}),
	}
	x := det(d, xdiff) / div
	y := det(d, ydiff) / div
	return Point{X: x, Y: y}, nil
}

func det(a, b [2]float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}
