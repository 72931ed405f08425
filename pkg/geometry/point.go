// Package geometry holds the 2D/3D primitives the box model is built on.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCoordinate is returned when a coordinate is NaN or infinite.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrParallelLines is returned when two lines have no single intersection.
	ErrParallelLines = errors.New("lines do not intersect")
)

// Point is a coordinate in 3D space. Z is zero for the 2D boxes produced by OCR engines.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z,omitempty" yaml:"z,omitempty"`
}

// NewPoint returns a 2D point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NewPoint3 returns a 3D point.
func NewPoint3(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// ValidCoordinate reports an error when v cannot be used as a coordinate.
func ValidCoordinate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinate, v)
	}
	return nil
}

// WithX returns a copy of p with X replaced.
func (p Point) WithX(x float64) (Point, error) {
	if err := ValidCoordinate(x); err != nil {
		return p, fmt.Errorf("x: %w", err)
	}
	p.X = x
	return p, nil
}

// WithY returns a copy of p with Y replaced.
func (p Point) WithY(y float64) (Point, error) {
	if err := ValidCoordinate(y); err != nil {
		return p, fmt.Errorf("y: %w", err)
	}
	p.Y = y
	return p, nil
}

// WithZ returns a copy of p with Z replaced.
func (p Point) WithZ(z float64) (Point, error) {
	if err := ValidCoordinate(z); err != nil {
		return p, fmt.Errorf("z: %w", err)
	}
	p.Z = z
	return p, nil
}

// Validate checks every coordinate of p.
func (p Point) Validate() error {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if err := ValidCoordinate(v); err != nil {
			return err
		}
	}
	return nil
}

// Sub returns the Euclidean distance between p and q. It is a distance, not a
// displacement vector: box lengths and angles are built on it.
func (p Point) Sub(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance is an alias for Sub.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q)
}

// Sum returns x+y+z.
func (p Point) Sum() float64 {
	return p.X + p.Y + p.Z
}

// DiffXY returns x-y.
func (p Point) DiffXY() float64 {
	return p.X - p.Y
}

// Round snaps the point onto the integer grid.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y), Z: math.Round(p.Z)}
}

// IsZero reports whether all coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

func (p Point) String() string {
	if p.Z != 0 {
		return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
	}
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
