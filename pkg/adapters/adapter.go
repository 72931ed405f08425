package adapters

import (
	"fmt"
	"math"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/geometry"
	"golang.org/x/text/unicode/norm"
)

// Detection is a single text region as reported by an OCR engine, before it is
// turned into a canonical box.
type Detection struct {
	Corners []geometry.Point
	Text    string
}

// Adapter interface that all OCR result formats must implement
type Adapter interface {
	// Name returns the adapter's name
	Name() string
	// Parse decodes a raw engine payload into detections
	Parse(payload []byte) ([]Detection, error)
}

// Box converts the detection into a canonical box. Two corners are read as the
// top-left and bottom-right of an axis-aligned rectangle.
func (d Detection) Box() (boundbox.BoundBox, error) {
	switch len(d.Corners) {
	case 2:
		for i, p := range d.Corners {
			if err := p.Validate(); err != nil {
				return boundbox.BoundBox{}, fmt.Errorf("corner %d: %w", i, err)
			}
		}
		return boundbox.FromCorners(d.Corners[0], d.Corners[1], d.Text), nil
	default:
		return boundbox.FromPoints(d.Corners, d.Text)
	}
}

// Boxes converts detections in order and stops at the first malformed one.
func Boxes(dets []Detection) ([]boundbox.BoundBox, error) {
	boxes := make([]boundbox.BoundBox, 0, len(dets))
	for i, d := range dets {
		b, err := d.Box()
		if err != nil {
			return nil, fmt.Errorf("detection %d (%q): %w", i, d.Text, err)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

// CleanText trims engine output and normalises it to NFC so that text produced
// by different engines compares equal.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Rect returns the two corners of an axis-aligned rectangle given by its origin
// and size.
func Rect(left, top, width, height float64) []geometry.Point {
	return []geometry.Point{
		geometry.NewPoint(left, top),
		geometry.NewPoint(left+width, top+height),
	}
}

// Polygon reads a flat x0,y0,x1,y1,... list of coordinates.
func Polygon(flat []float64) ([]geometry.Point, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of polygon coordinates (%d)", geometry.ErrInvalidCoordinate, len(flat))
	}
	pts := make([]geometry.Point, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		pts = append(pts, geometry.NewPoint(flat[i], flat[i+1]))
	}
	return pts, nil
}

// Bounds reduces a polygon of any size to its axis-aligned bounding rectangle.
// Polygons that already have four corners are returned unchanged.
func Bounds(pts []geometry.Point) []geometry.Point {
	if len(pts) == 4 || len(pts) == 0 {
		return pts
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return []geometry.Point{geometry.NewPoint(minX, minY), geometry.NewPoint(maxX, maxY)}
}

// ParseBoxes runs an adapter over payload and converts the detections into boxes.
func ParseBoxes(a Adapter, payload []byte) ([]boundbox.BoundBox, error) {
	dets, err := a.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name(), err)
	}
	boxes, err := Boxes(dets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name(), err)
	}
	return boxes, nil
}
