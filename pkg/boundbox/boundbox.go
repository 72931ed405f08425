// Package boundbox models oriented quadrilateral text regions as reported by OCR
// engines and implements the geometry used to normalise, transform and merge them.
//
//	p1 ---------------------- p2
//	|                          |
//	|        text value        |
//	|                          |
//	p4 ---------------------- p3
//
// Corners are always kept in canonical order: p1 top-left, p2 top-right,
// p3 bottom-right, p4 bottom-left, decided by geometry rather than by the order
// the corners were supplied in. The zero value is the void box, the identity
// element for Add.
package boundbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/geometry"
)

var (
	// ErrDegenerateGeometry marks a box that cannot describe a usable region.
	ErrDegenerateGeometry = errors.New("degenerate box geometry")

	// ErrCornerCount is returned when a corner collection does not hold four points.
	ErrCornerCount = errors.New("a box needs exactly four corners")
)

// BoundBox is a quadrilateral text region with an associated text label.
type BoundBox struct {
	p     [4]geometry.Point
	valid bool

	Text string
}

// New builds a box from four corners given in any order.
func New(p1, p2, p3, p4 geometry.Point, text string) BoundBox {
	return BoundBox{
		p:     Canonicalize([4]geometry.Point{p1, p2, p3, p4}),
		valid: true,
		Text:  text,
	}
}

// NewOrdered trusts the caller's corner order and skips canonicalization.
// Only use it when the corners are already top-left, top-right, bottom-right,
// bottom-left.
func NewOrdered(p1, p2, p3, p4 geometry.Point, text string) BoundBox {
	return BoundBox{
		p:     [4]geometry.Point{p1, p2, p3, p4},
		valid: true,
		Text:  text,
	}
}

// FromCorners builds an axis-aligned box from its top-left and bottom-right corners.
func FromCorners(topLeft, bottomRight geometry.Point, text string) BoundBox {
	return New(
		topLeft,
		geometry.NewPoint(bottomRight.X, topLeft.Y),
		bottomRight,
		geometry.NewPoint(topLeft.X, bottomRight.Y),
		text,
	)
}

// FromRect builds an axis-aligned box from a left/top origin and a size, the shape
// tesseract reports word boxes in.
func FromRect(x, y, width, height float64, text string) BoundBox {
	return FromCorners(geometry.NewPoint(x, y), geometry.NewPoint(x+width, y+height), text)
}

// FromPoints builds a box from exactly four corners in any order.
func FromPoints(pts []geometry.Point, text string) (BoundBox, error) {
	if len(pts) != 4 {
		return BoundBox{}, fmt.Errorf("%w: got %d", ErrCornerCount, len(pts))
	}
	for i, p := range pts {
		if err := p.Validate(); err != nil {
			return BoundBox{}, fmt.Errorf("corner %d: %w", i, err)
		}
	}
	return New(pts[0], pts[1], pts[2], pts[3], text), nil
}

// FromArray builds a box from four [x, y] pairs in any order, the shape contour
// detectors and most vendor polygons come in.
func FromArray(pts [][]float64, text string) (BoundBox, error) {
	if len(pts) != 4 {
		return BoundBox{}, fmt.Errorf("%w: got %d", ErrCornerCount, len(pts))
	}
	corners := make([]geometry.Point, 0, 4)
	for i, pair := range pts {
		if len(pair) != 2 {
			return BoundBox{}, fmt.Errorf("corner %d: %w: want [x, y], got %d values", i, geometry.ErrInvalidCoordinate, len(pair))
		}
		corners = append(corners, geometry.NewPoint(pair[0], pair[1]))
	}
	return FromPoints(corners, text)
}

// Void returns the empty box used as the starting accumulator of a merge.
func Void() BoundBox {
	return BoundBox{}
}

// IsVoid reports whether b carries no geometry.
func (b BoundBox) IsVoid() bool {
	return !b.valid
}

// P1 returns the top-left corner.
func (b BoundBox) P1() geometry.Point { return b.p[0] }

// P2 returns the top-right corner.
func (b BoundBox) P2() geometry.Point { return b.p[1] }

// P3 returns the bottom-right corner.
func (b BoundBox) P3() geometry.Point { return b.p[2] }

// P4 returns the bottom-left corner.
func (b BoundBox) P4() geometry.Point { return b.p[3] }

// Corners returns a copy of the four corners in canonical order.
func (b BoundBox) Corners() [4]geometry.Point {
	return b.p
}

// Array returns the corners snapped to the integer pixel grid.
func (b BoundBox) Array() [4][2]int {
	var out [4][2]int
	for i, p := range b.p {
		r := p.Round()
		out[i] = [2]int{int(r.X), int(r.Y)}
	}
	return out
}

// Float returns the corners as [x, y] pairs.
func (b BoundBox) Float() [4][2]float64 {
	var out [4][2]float64
	for i, p := range b.p {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func (b BoundBox) allZero() bool {
	for _, p := range b.p {
		if !p.IsZero() {
			return false
		}
	}
	return true
}

func (b BoundBox) String() string {
	if b.IsVoid() {
		return fmt.Sprintf("%q void", b.Text)
	}
	return fmt.Sprintf("%q %v %v %v %v", b.Text, b.p[0], b.p[1], b.p[2], b.p[3])
}

func joinText(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
