package boundbox

import (
	"fmt"
	"image"
	"math"

	"github.com/akashtjohn/boundbox/pkg/geometry"
)

// Centroid returns the centre of mass of the quadrilateral.
//
// Each diagonal splits the box into two triangles. The line joining the two
// triangle centroids of one split crosses the matching line of the other split at
// the quadrilateral's centroid, which stays correct for skewed boxes where the
// average of the corners drifts.
func (b BoundBox) Centroid() (geometry.Point, error) {
	p1, p2, p3, p4 := b.p[0], b.p[1], b.p[2], b.p[3]

	first := geometry.NewLine(triangleCentroid(p1, p2, p3), triangleCentroid(p1, p3, p4))
	second := geometry.NewLine(triangleCentroid(p1, p2, p4), triangleCentroid(p2, p3, p4))

	c, err := first.Intersect(second)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("centroid of %v: %w", b, err)
	}
	return c, nil
}

func triangleCentroid(a, b, c geometry.Point) geometry.Point {
	return geometry.NewPoint((a.X+b.X+c.X)/3, (a.Y+b.Y+c.Y)/3)
}

// Length is the length of the top edge.
func (b BoundBox) Length() float64 {
	return b.p[0].Sub(b.p[1])
}

// Breadth is the length of the left edge.
func (b BoundBox) Breadth() float64 {
	return b.p[0].Sub(b.p[3])
}

// Angle returns the inclination of the bottom edge (p4 to p3) in radians. The
// bottom edge is used because ascenders distort the top edge of text boxes.
func (b BoundBox) Angle() float64 {
	dx := b.p[2].X - b.p[3].X
	dy := b.p[2].Y - b.p[3].Y
	if dx == 0 {
		if dy == 0 {
			return 0
		}
		return math.Copysign(math.Pi/2, dy)
	}
	return math.Atan(dy / dx)
}

// Rotate turns the box in place about its centroid by angle radians. Rotation is
// clockwise on screen (y pointing down) unless anticlockwise is set. Corners are
// snapped to the integer grid and re-canonicalized afterwards.
func (b *BoundBox) Rotate(angle float64, anticlockwise bool) error {
	if b.IsVoid() {
		return nil
	}
	if err := geometry.ValidCoordinate(angle); err != nil {
		return fmt.Errorf("rotation angle: %w", err)
	}

	c, err := b.Centroid()
	if err != nil {
		return err
	}

	if anticlockwise {
		angle = -angle
	}
	cos, sin := math.Cos(angle), math.Sin(angle)

	var rotated [4]geometry.Point
	for i, p := range b.p {
		dx, dy := p.X-c.X, p.Y-c.Y
		rotated[i] = geometry.Point{
			X: math.Round(c.X + dx*cos - dy*sin),
			Y: math.Round(c.Y + dx*sin + dy*cos),
			Z: p.Z,
		}
	}
	b.p = Canonicalize(rotated)
	return nil
}

// RotateDegrees is Rotate with the angle given in degrees.
func (b *BoundBox) RotateDegrees(degrees float64, anticlockwise bool) error {
	return b.Rotate(degrees*math.Pi/180, anticlockwise)
}

// ChangeRatio rescales the box in place, for example after the underlying image
// was resized. x is multiplied by widthRatio and y by heightRatio. A negative
// ratio mirrors the box; corners are re-canonicalized afterwards.
func (b *BoundBox) ChangeRatio(widthRatio, heightRatio float64) error {
	if err := geometry.ValidCoordinate(widthRatio); err != nil {
		return fmt.Errorf("width ratio: %w", err)
	}
	if err := geometry.ValidCoordinate(heightRatio); err != nil {
		return fmt.Errorf("height ratio: %w", err)
	}
	if b.IsVoid() {
		return nil
	}
	for i := range b.p {
		b.p[i].X *= widthRatio
		b.p[i].Y *= heightRatio
	}
	b.p = Canonicalize(b.p)
	return nil
}

// CropRegion returns the axis-aligned rectangle to crop the box out of an image.
func (b BoundBox) CropRegion() (image.Rectangle, error) {
	if b.IsVoid() {
		return image.Rectangle{}, fmt.Errorf("%w: void box", ErrDegenerateGeometry)
	}

	ymin := math.Min(b.p[0].Y, b.p[1].Y)
	ymax := math.Max(b.p[2].Y, b.p[3].Y)
	xmin := math.Min(b.p[0].X, b.p[3].X)
	xmax := math.Max(b.p[1].X, b.p[2].X)

	if ymin > ymax || xmin > xmax {
		return image.Rectangle{}, fmt.Errorf("%w: edges of %v do not form a rectangle", ErrDegenerateGeometry, b)
	}

	return image.Rectangle{
		Min: image.Pt(int(math.Floor(xmin)), int(math.Floor(ymin))),
		Max: image.Pt(int(math.Ceil(xmax)), int(math.Ceil(ymax))),
	}, nil
}
