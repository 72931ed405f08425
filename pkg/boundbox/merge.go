package boundbox

import (
	"math"

	"github.com/akashtjohn/boundbox/pkg/geometry"
)

// Add returns the union of b and other without modifying either. The result spans
// the smallest top-left and the largest bottom-right of the two boxes, and the texts
// are joined with a single space. A void operand is the identity.
func (b BoundBox) Add(other BoundBox) BoundBox {
	text := joinText(b.Text, other.Text)

	switch {
	case b.IsVoid() && other.IsVoid():
		return BoundBox{Text: text}
	case b.IsVoid():
		other.Text = text
		return other
	case other.IsVoid():
		b.Text = text
		return b
	}

	p1 := geometry.NewPoint(math.Min(b.p[0].X, other.p[0].X), math.Min(b.p[0].Y, other.p[0].Y))
	p2 := geometry.NewPoint(math.Max(b.p[1].X, other.p[1].X), math.Min(b.p[1].Y, other.p[1].Y))
	p3 := geometry.NewPoint(math.Max(b.p[2].X, other.p[2].X), math.Max(b.p[2].Y, other.p[2].Y))
	p4 := geometry.NewPoint(math.Min(b.p[3].X, other.p[3].X), math.Max(b.p[3].Y, other.p[3].Y))

	return New(p1, p2, p3, p4, text)
}

// MergeAll folds boxes with Add, starting from the void box.
func MergeAll(boxes ...BoundBox) BoundBox {
	acc := Void()
	for _, box := range boxes {
		acc = acc.Add(box)
	}
	return acc
}

// MergeHorizontal joins two boxes on the same text line, left lying before right.
// The result keeps the left edge of left and the right edge of right as they are.
// If either side carries no geometry the other one is returned unchanged.
func MergeHorizontal(left, right BoundBox) BoundBox {
	if left.IsVoid() || left.allZero() {
		return right
	}
	if right.IsVoid() || right.allZero() {
		return left
	}
	return NewOrdered(left.p[0], right.p[1], right.p[2], left.p[3], joinText(left.Text, right.Text))
}
