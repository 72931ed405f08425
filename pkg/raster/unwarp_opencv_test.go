//go:build opencv

package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwarpGraySource(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 60, 40))
	for i := range img.Pix {
		img.Pix[i] = 200
	}

	out, err := Unwarp(img, boundbox.FromRect(10, 5, 40, 30, ""))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 30), out.Bounds().Size())
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, out.NRGBAAt(20, 15))
}
