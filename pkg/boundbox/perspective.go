package boundbox

import (
	"fmt"
	"math"

	"github.com/akashtjohn/boundbox/pkg/geometry"
)

// Homography is a row-major 3x3 projective transform.
type Homography [9]float64

// Apply maps (x, y) through h. ok is false when the point maps to infinity.
func (h Homography) Apply(x, y float64) (float64, float64, bool) {
	w := h[6]*x + h[7]*y + h[8]
	if w == 0 {
		return 0, 0, false
	}
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w, true
}

// Inverse returns the transform mapping back from the destination plane.
func (h Homography) Inverse() (Homography, error) {
	a, b, c := h[0], h[1], h[2]
	d, e, f := h[3], h[4], h[5]
	g, k, l := h[6], h[7], h[8]

	co00 := e*l - f*k
	co01 := -(d*l - f*g)
	co02 := d*k - e*g
	det := a*co00 + b*co01 + c*co02
	if det == 0 {
		return Homography{}, fmt.Errorf("%w: singular perspective transform", ErrDegenerateGeometry)
	}

	inv := Homography{
		co00, -(b*l - c*k), b*f - c*e,
		co01, a*l - c*g, -(a*f - c*d),
		co02, -(a*k - b*g), a*e - b*d,
	}
	for i := range inv {
		inv[i] /= det
	}
	return inv, nil
}

// Warp describes how to unwarp a box into an upright rectangle. Matrix maps the
// Source corners onto (0,0), (Width-1,0), (Width-1,Height-1), (0,Height-1). The
// pixel resampling itself is left to an image collaborator.
type Warp struct {
	Source [4]geometry.Point
	Width  int
	Height int
	Matrix Homography
}

// Destination returns the four corners of the target rectangle.
func (w Warp) Destination() [4]geometry.Point {
	right := float64(w.Width - 1)
	bottom := float64(w.Height - 1)
	return [4]geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(right, 0),
		geometry.NewPoint(right, bottom),
		geometry.NewPoint(0, bottom),
	}
}

// PerspectiveTransform computes the projective transform flattening the box onto
// an axis-aligned rectangle. The target size is the longer of each pair of
// opposite edges.
func (b BoundBox) PerspectiveTransform() (Warp, error) {
	if b.IsVoid() {
		return Warp{}, fmt.Errorf("%w: void box", ErrDegenerateGeometry)
	}
	p1, p2, p3, p4 := b.p[0], b.p[1], b.p[2], b.p[3]

	width := int(math.Max(p3.Sub(p4), p2.Sub(p1)))
	height := int(math.Max(p2.Sub(p3), p1.Sub(p4)))
	if width < 2 || height < 2 {
		return Warp{}, fmt.Errorf("%w: %v unwarps to %dx%d", ErrDegenerateGeometry, b, width, height)
	}

	w := Warp{Source: b.p, Width: width, Height: height}
	h, err := solveHomography(w.Source, w.Destination())
	if err != nil {
		return Warp{}, fmt.Errorf("perspective transform of %v: %w", b, err)
	}
	w.Matrix = h
	return w, nil
}

// solveHomography finds H with H*src[i] = dst[i], fixing h22 = 1.
func solveHomography(src, dst [4]geometry.Point) (Homography, error) {
	var a [8][9]float64
	for i := range 4 {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		a[2*i] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		a[2*i+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	// Gauss-Jordan elimination with partial pivoting on the augmented system.
	for col := range 8 {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return Homography{}, fmt.Errorf("%w: corners are collinear", ErrDegenerateGeometry)
		}
		a[col], a[pivot] = a[pivot], a[col]

		div := a[col][col]
		for c := col; c < 9; c++ {
			a[col][c] /= div
		}
		for r := range 8 {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c < 9; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}

	var h Homography
	for i := range 8 {
		h[i] = a[i][8]
	}
	h[8] = 1
	return h, nil
}
