package boundbox

import (
	"encoding/json"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/akashtjohn/boundbox/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point {
	return geometry.NewPoint(x, y)
}

func mustArray(t *testing.T, pts [][]float64, text string) BoundBox {
	t.Helper()
	b, err := FromArray(pts, text)
	require.NoError(t, err)
	return b
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   [4]geometry.Point
		want [4]geometry.Point
	}{
		{
			name: "skewed contour",
			in:   [4]geometry.Point{pt(429, 48), pt(113, 96), pt(129, 415), pt(430, 423)},
			want: [4]geometry.Point{pt(113, 96), pt(429, 48), pt(430, 423), pt(129, 415)},
		},
		{
			name: "axis aligned, shuffled",
			in:   [4]geometry.Point{pt(10, 20), pt(0, 0), pt(0, 20), pt(10, 0)},
			want: [4]geometry.Point{pt(0, 0), pt(10, 0), pt(10, 20), pt(0, 20)},
		},
		{
			name: "diamond with tied sums",
			in:   [4]geometry.Point{pt(9, 321), pt(79, 391), pt(291, 179), pt(221, 109)},
			want: [4]geometry.Point{pt(221, 109), pt(291, 179), pt(79, 391), pt(9, 321)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonicalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Canonicalize(got), "canonicalization must be idempotent")
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Run("from array", func(t *testing.T) {
		b := mustArray(t, [][]float64{{429, 48}, {113, 96}, {129, 415}, {430, 423}}, "contour")
		assert.Equal(t, pt(113, 96), b.P1())
		assert.Equal(t, pt(429, 48), b.P2())
		assert.Equal(t, pt(430, 423), b.P3())
		assert.Equal(t, pt(129, 415), b.P4())
		assert.Equal(t, "contour", b.Text)
		assert.False(t, b.IsVoid())
	})

	t.Run("from corners", func(t *testing.T) {
		b := FromCorners(pt(77, 30), pt(420, 94), "Noisyimage")
		assert.Equal(t, [4][2]int{{77, 30}, {420, 30}, {420, 94}, {77, 94}}, b.Array())
	})

	t.Run("from rect", func(t *testing.T) {
		b := FromRect(77, 30, 343, 64, "Noisyimage")
		assert.Equal(t, [4][2]int{{77, 30}, {420, 30}, {420, 94}, {77, 94}}, b.Array())
	})

	t.Run("new ignores argument order", func(t *testing.T) {
		a := New(pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2), "")
		b := New(pt(2, 2), pt(0, 2), pt(0, 0), pt(2, 0), "")
		assert.Equal(t, a.Corners(), b.Corners())
	})

	t.Run("ordered keeps argument order", func(t *testing.T) {
		b := NewOrdered(pt(0, 2), pt(2, 2), pt(2, 0), pt(0, 0), "hello world")
		assert.Equal(t, pt(0, 2), b.P1())
		assert.Equal(t, pt(0, 0), b.P4())
	})
}

func TestFromArrayErrors(t *testing.T) {
	tests := []struct {
		name    string
		pts     [][]float64
		wantErr error
	}{
		{name: "three corners", pts: [][]float64{{0, 0}, {1, 0}, {1, 1}}, wantErr: ErrCornerCount},
		{name: "five corners", pts: [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}, wantErr: ErrCornerCount},
		{name: "empty", pts: nil, wantErr: ErrCornerCount},
		{name: "short pair", pts: [][]float64{{0, 0}, {1}, {1, 1}, {0, 1}}, wantErr: geometry.ErrInvalidCoordinate},
		{name: "nan", pts: [][]float64{{0, 0}, {1, math.NaN()}, {1, 1}, {0, 1}}, wantErr: geometry.ErrInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromArray(tt.pts, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := FromPoints([]geometry.Point{pt(0, 0)}, "")
	assert.True(t, errors.Is(err, ErrCornerCount))
}

func TestVoid(t *testing.T) {
	var zero BoundBox
	assert.True(t, zero.IsVoid())
	assert.True(t, Void().IsVoid())
	assert.False(t, FromRect(0, 0, 0, 0, "").IsVoid(), "a zero-sized box is still a box")
}

func TestLengthBreadth(t *testing.T) {
	b := FromRect(10, 10, 30, 40, "")
	assert.Equal(t, 30.0, b.Length())
	assert.Equal(t, 40.0, b.Breadth())
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		box  BoundBox
		want float64
	}{
		{name: "flat", box: FromRect(0, 0, 100, 20, ""), want: 0},
		{name: "rotated 45", box: NewOrdered(pt(221, 109), pt(291, 179), pt(79, 391), pt(9, 321), ""), want: math.Pi / 4},
		{name: "sloping up", box: NewOrdered(pt(0, 10), pt(10, 0), pt(20, 10), pt(10, 20), ""), want: -math.Pi / 4},
		{name: "vertical bottom edge", box: NewOrdered(pt(0, 0), pt(5, 0), pt(0, 10), pt(0, 5), ""), want: math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.box.Angle(), 1e-12)
		})
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name  string
		box   BoundBox
		wantX float64
		wantY float64
	}{
		{name: "square", box: FromCorners(pt(100, 100), pt(500, 500), ""), wantX: 300, wantY: 300},
		{name: "tall rectangle", box: FromCorners(pt(100, 100), pt(200, 400), ""), wantX: 150, wantY: 250},
		{name: "parallelogram", box: NewOrdered(pt(10, 0), pt(30, 0), pt(20, 10), pt(0, 10), ""), wantX: 15, wantY: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.box.Centroid()
			require.NoError(t, err)
			assert.InDelta(t, tt.wantX, c.X, 1e-9)
			assert.InDelta(t, tt.wantY, c.Y, 1e-9)
		})
	}

	t.Run("degenerate box", func(t *testing.T) {
		b := New(pt(5, 5), pt(5, 5), pt(5, 5), pt(5, 5), "")
		_, err := b.Centroid()
		require.Error(t, err)
		assert.True(t, errors.Is(err, geometry.ErrParallelLines))
	})
}

func TestRotate(t *testing.T) {
	t.Run("45 degrees clockwise", func(t *testing.T) {
		b := mustArray(t, [][]float64{{100, 100}, {200, 100}, {200, 400}, {100, 400}}, "")
		require.NoError(t, b.Rotate(math.Pi/4, false))
		assert.Equal(t, [4][2]int{{221, 109}, {291, 179}, {79, 391}, {9, 321}}, b.Array())
	})

	t.Run("degrees helper matches radians", func(t *testing.T) {
		a := FromCorners(pt(100, 100), pt(200, 400), "")
		b := a
		require.NoError(t, a.Rotate(math.Pi/4, false))
		require.NoError(t, b.RotateDegrees(45, false))
		assert.Equal(t, a.Corners(), b.Corners())
	})

	t.Run("anticlockwise mirrors clockwise", func(t *testing.T) {
		cw := FromCorners(pt(100, 100), pt(200, 400), "")
		acw := cw
		require.NoError(t, cw.Rotate(math.Pi/2, false))
		require.NoError(t, acw.Rotate(math.Pi/2, true))
		// a quarter turn of a rectangle lands on the same footprint either way
		assert.Equal(t, cw.Corners(), acw.Corners())
		assert.Equal(t, [4][2]int{{0, 200}, {300, 200}, {300, 300}, {0, 300}}, cw.Array())
	})

	t.Run("full turn is a no-op", func(t *testing.T) {
		b := mustArray(t, [][]float64{{429, 48}, {113, 96}, {129, 415}, {430, 423}}, "")
		before := b.Corners()
		require.NoError(t, b.Rotate(2*math.Pi, false))
		assert.Equal(t, before, b.Corners())
		require.NoError(t, b.Rotate(2*math.Pi, true))
		assert.Equal(t, before, b.Corners())
	})

	t.Run("void box", func(t *testing.T) {
		var b BoundBox
		assert.NoError(t, b.Rotate(1, false))
		assert.True(t, b.IsVoid())
	})

	t.Run("invalid angle", func(t *testing.T) {
		b := FromRect(0, 0, 10, 10, "")
		err := b.Rotate(math.NaN(), false)
		assert.True(t, errors.Is(err, geometry.ErrInvalidCoordinate))
	})
}

func TestChangeRatio(t *testing.T) {
	b := FromCorners(pt(10, 20), pt(30, 40), "")
	require.NoError(t, b.ChangeRatio(2, 0.5))
	assert.Equal(t, [4][2]int{{20, 10}, {60, 10}, {60, 20}, {20, 20}}, b.Array())

	assert.Error(t, b.ChangeRatio(math.Inf(1), 1))
}

func TestChangeRatioMirror(t *testing.T) {
	tests := []struct {
		name   string
		wr, hr float64
		want   [4][2]int
	}{
		{name: "mirror x", wr: -1, hr: 1, want: [4][2]int{{-30, 20}, {-10, 20}, {-10, 40}, {-30, 40}}},
		{name: "mirror y", wr: 1, hr: -1, want: [4][2]int{{10, -40}, {30, -40}, {30, -20}, {10, -20}}},
		{name: "mirror both", wr: -2, hr: -2, want: [4][2]int{{-60, -80}, {-20, -80}, {-20, -40}, {-60, -40}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromCorners(pt(10, 20), pt(30, 40), "")
			require.NoError(t, b.ChangeRatio(tt.wr, tt.hr))
			assert.Equal(t, tt.want, b.Array())
			assert.Equal(t, Canonicalize(b.Corners()), b.Corners())

			r, err := b.CropRegion()
			require.NoError(t, err)
			assert.Equal(t, image.Rect(tt.want[0][0], tt.want[0][1], tt.want[2][0], tt.want[2][1]), r)
		})
	}

	t.Run("void box stays void", func(t *testing.T) {
		var b BoundBox
		require.NoError(t, b.ChangeRatio(-1, 2))
		assert.True(t, b.IsVoid())
	})
}

func TestCropRegion(t *testing.T) {
	t.Run("rectangle", func(t *testing.T) {
		r, err := FromCorners(pt(10, 20), pt(30, 45), "").CropRegion()
		require.NoError(t, err)
		assert.Equal(t, 10, r.Min.X)
		assert.Equal(t, 20, r.Min.Y)
		assert.Equal(t, 30, r.Max.X)
		assert.Equal(t, 45, r.Max.Y)
	})

	t.Run("skewed box uses outer edges", func(t *testing.T) {
		b := mustArray(t, [][]float64{{429, 48}, {113, 96}, {129, 415}, {430, 423}}, "")
		r, err := b.CropRegion()
		require.NoError(t, err)
		assert.Equal(t, 113, r.Min.X)
		assert.Equal(t, 48, r.Min.Y)
		assert.Equal(t, 430, r.Max.X)
		assert.Equal(t, 423, r.Max.Y)
	})

	t.Run("inverted box", func(t *testing.T) {
		b := NewOrdered(pt(0, 0), pt(10, 0), pt(10, -5), pt(0, -5), "")
		r, err := b.CropRegion()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerateGeometry))
		assert.True(t, r.Empty())
	})

	t.Run("void box", func(t *testing.T) {
		_, err := Void().CropRegion()
		assert.True(t, errors.Is(err, ErrDegenerateGeometry))
	})
}

func TestRecordJSON(t *testing.T) {
	b := mustArray(t, [][]float64{{429, 48}, {113, 96}, {129, 415}, {430, 423}}, "hello")

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hello","corners":[[113,96],[429,48],[430,423],[129,415]]}`, string(data))

	var back BoundBox
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, b.Corners(), back.Corners())
	assert.Equal(t, "hello", back.Text)

	require.NoError(t, json.Unmarshal([]byte(`{"text":"nothing"}`), &back))
	assert.True(t, back.IsVoid())

	err = json.Unmarshal([]byte(`{"text":"bad","corners":[[0,0],[1,1]]}`), &back)
	assert.True(t, errors.Is(err, ErrCornerCount))
}
