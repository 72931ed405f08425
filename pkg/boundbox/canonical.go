package boundbox

import "github.com/akashtjohn/boundbox/pkg/geometry"

// Canonicalize orders four corners as top-left, top-right, bottom-right, bottom-left.
//
// The corner with the smallest x+y is top-left and the one with the largest x+y is
// bottom-right. Ties on the sum are broken by y-x: the smaller wins top-left and the
// larger wins bottom-right. Of the two corners left, the one with the smaller y-x is
// top-right. Equal keys keep input order, which makes the result idempotent.
func Canonicalize(pts [4]geometry.Point) [4]geometry.Point {
	tl := 0
	for i := 1; i < 4; i++ {
		s, best := pts[i].X+pts[i].Y, pts[tl].X+pts[tl].Y
		if s < best || (s == best && diff(pts[i]) < diff(pts[tl])) {
			tl = i
		}
	}

	br := -1
	for i := 0; i < 4; i++ {
		if i == tl {
			continue
		}
		if br == -1 {
			br = i
			continue
		}
		s, best := pts[i].X+pts[i].Y, pts[br].X+pts[br].Y
		if s > best || (s == best && diff(pts[i]) > diff(pts[br])) {
			br = i
		}
	}

	rest := make([]int, 0, 2)
	for i := 0; i < 4; i++ {
		if i != tl && i != br {
			rest = append(rest, i)
		}
	}
	tr, bl := rest[0], rest[1]
	if diff(pts[bl]) < diff(pts[tr]) {
		tr, bl = bl, tr
	}

	return [4]geometry.Point{pts[tl], pts[tr], pts[br], pts[bl]}
}

// diff is y-x: small towards the top-right, large towards the bottom-left.
func diff(p geometry.Point) float64 {
	return p.Y - p.X
}
