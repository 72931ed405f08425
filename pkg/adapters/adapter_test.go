package adapters

import (
	"errors"
	"testing"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	name string
	dets []Detection
	err  error
}

func (f fakeAdapter) Name() string { return f.name }

func (f fakeAdapter) Parse([]byte) ([]Detection, error) { return f.dets, f.err }

func pts(xy ...float64) []geometry.Point {
	out, err := Polygon(xy)
	if err != nil {
		panic(err)
	}
	return out
}

func TestDetectionBox(t *testing.T) {
	tests := []struct {
		name    string
		det     Detection
		want    [4][2]int
		wantErr error
	}{
		{
			name: "four corners are canonicalized",
			det:  Detection{Corners: pts(429, 48, 113, 96, 129, 415, 430, 423)},
			want: [4][2]int{{113, 96}, {429, 48}, {430, 423}, {129, 415}},
		},
		{
			name: "two corners make a rectangle",
			det:  Detection{Corners: pts(77, 30, 420, 94)},
			want: [4][2]int{{77, 30}, {420, 30}, {420, 94}, {77, 94}},
		},
		{
			name:    "three corners",
			det:     Detection{Corners: pts(0, 0, 1, 0, 1, 1)},
			wantErr: boundbox.ErrCornerCount,
		},
		{
			name:    "no corners",
			det:     Detection{Text: "lost"},
			wantErr: boundbox.ErrCornerCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := tt.det.Box()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, box.Array())
		})
	}
}

func TestBoxesFailsFast(t *testing.T) {
	dets := []Detection{
		{Corners: pts(0, 0, 10, 10), Text: "ok"},
		{Corners: pts(0, 0, 1, 1, 2, 2), Text: "broken"},
		{Corners: pts(0, 0, 10, 10), Text: "never"},
	}

	boxes, err := Boxes(dets)
	require.Error(t, err)
	assert.Nil(t, boxes)
	assert.ErrorContains(t, err, "detection 1")
	assert.True(t, errors.Is(err, boundbox.ErrCornerCount))
}

func TestParseBoxes(t *testing.T) {
	a := fakeAdapter{name: "fake", dets: []Detection{{Corners: pts(0, 0, 4, 2), Text: "hello"}}}
	boxes, err := ParseBoxes(a, nil)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "hello", boxes[0].Text)

	_, err = ParseBoxes(fakeAdapter{name: "fake", err: errors.New("boom")}, nil)
	assert.ErrorContains(t, err, "fake: boom")
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello \n", "hello"},
		{"café", "café"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in))
	}
}

func TestPolygon(t *testing.T) {
	_, err := Polygon([]float64{1, 2, 3})
	assert.True(t, errors.Is(err, geometry.ErrInvalidCoordinate))

	got, err := Polygon([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point{geometry.NewPoint(1, 2), geometry.NewPoint(3, 4)}, got)
}

func TestBounds(t *testing.T) {
	quad := pts(0, 0, 1, 0, 1, 1, 0, 1)
	assert.Equal(t, quad, Bounds(quad))

	hexagon := pts(0, 0, 10, 0, 20, 5, 10, 10, 0, 10, -5, 5)
	assert.Equal(t, pts(-5, 0, 20, 10), Bounds(hexagon))

	assert.Empty(t, Bounds(nil))
}

func TestRect(t *testing.T) {
	assert.Equal(t, pts(10, 20, 40, 60), Rect(10, 20, 30, 40))
}
