package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointSub(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{name: "2d", p: NewPoint(3, 5), q: NewPoint(7, 8), want: 5},
		{name: "same point", p: NewPoint(4, 4), q: NewPoint(4, 4), want: 0},
		{name: "3d", p: NewPoint3(1, 2, 3), q: NewPoint3(3, 5, 9), want: 7},
		{name: "negative coordinates", p: NewPoint(-3, 0), q: NewPoint(0, -4), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Sub(tt.q), 1e-12)
			assert.InDelta(t, tt.want, tt.q.Distance(tt.p), 1e-12)
		})
	}
}

func TestPointSubDoesNotMutate(t *testing.T) {
	p := NewPoint(3, 5)
	q := NewPoint(7, 8)
	_ = p.Sub(q)
	assert.Equal(t, NewPoint(3, 5), p)
	assert.Equal(t, NewPoint(7, 8), q)
}

func TestPointDerived(t *testing.T) {
	p := NewPoint3(1, 2, 3)
	assert.Equal(t, 6.0, p.Sum())
	assert.Equal(t, 2.0, NewPoint(4, 2).DiffXY())
	assert.Equal(t, NewPoint(3, -2), NewPoint(2.5, -2.4).Round())
	assert.True(t, Point{}.IsZero())
	assert.False(t, NewPoint(0, 1).IsZero())
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "(2, 3)", NewPoint(2, 3).String())
	assert.Equal(t, "(2, 3, 7)", NewPoint3(2, 3, 7).String())
}

func TestPointWith(t *testing.T) {
	p := NewPoint(1, 1)

	q, err := p.WithX(5)
	require.NoError(t, err)
	assert.Equal(t, NewPoint(5, 1), q)
	assert.Equal(t, NewPoint(1, 1), p, "original must be untouched")

	q, err = p.WithZ(2)
	require.NoError(t, err)
	assert.Equal(t, NewPoint3(1, 1, 2), q)

	_, err = p.WithY(math.NaN())
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, err = p.WithX(math.Inf(1))
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	assert.Error(t, NewPoint(math.NaN(), 0).Validate())
	assert.NoError(t, NewPoint(1, 2).Validate())
}

func TestLineIntersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Line
		want    Point
		wantErr bool
	}{
		{
			name: "perpendicular",
			a:    NewLine(NewPoint(0, 5), NewPoint(10, 5)),
			b:    NewLine(NewPoint(3, 0), NewPoint(3, 10)),
			want: NewPoint(3, 5),
		},
		{
			name: "diagonals of a square",
			a:    NewLine(NewPoint(0, 0), NewPoint(4, 4)),
			b:    NewLine(NewPoint(4, 0), NewPoint(0, 4)),
			want: NewPoint(2, 2),
		},
		{
			name: "segments that do not overlap still intersect as lines",
			a:    NewLine(NewPoint(0, 0), NewPoint(1, 1)),
			b:    NewLine(NewPoint(10, 0), NewPoint(9, 1)),
			want: NewPoint(5, 5),
		},
		{
			name:    "parallel",
			a:       NewLine(NewPoint(0, 0), NewPoint(10, 0)),
			b:       NewLine(NewPoint(0, 1), NewPoint(10, 1)),
			wantErr: true,
		},
		{
			name:    "coincident",
			a:       NewLine(NewPoint(0, 0), NewPoint(1, 1)),
			b:       NewLine(NewPoint(2, 2), NewPoint(3, 3)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Intersect(tt.b)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParallelLines))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestLineDirection(t *testing.T) {
	dx, dy := NewLine(NewPoint(1, 2), NewPoint(4, 0)).Direction()
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -2.0, dy)
}
