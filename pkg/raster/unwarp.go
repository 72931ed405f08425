//go:build !opencv

package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/disintegration/imaging"
)

// Unwarp maps the quadrilateral box onto an upright rectangle using the box's
// perspective transform and bilinear sampling. Pixels that fall outside the
// source image are black.
func Unwarp(img image.Image, box boundbox.BoundBox) (*image.NRGBA, error) {
	warp, err := box.PerspectiveTransform()
	if err != nil {
		return nil, err
	}
	inv, err := warp.Matrix.Inverse()
	if err != nil {
		return nil, err
	}

	src := imaging.Clone(img)
	dst := imaging.New(warp.Width, warp.Height, color.Black)
	for y := range warp.Height {
		for x := range warp.Width {
			sx, sy, ok := inv.Apply(float64(x), float64(y))
			if !ok {
				continue
			}
			dst.SetNRGBA(x, y, bilinear(src, sx, sy))
		}
	}
	return dst, nil
}

func bilinear(src *image.NRGBA, x, y float64) color.NRGBA {
	b := src.Bounds()
	if x < 0 || y < 0 || x > float64(b.Dx()-1) || y > float64(b.Dy()-1) {
		return color.NRGBA{A: 255}
	}
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := min(x0+1, b.Dx()-1), min(y0+1, b.Dy()-1)
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := src.NRGBAAt(x0, y0)
	c10 := src.NRGBAAt(x1, y0)
	c01 := src.NRGBAAt(x0, y1)
	c11 := src.NRGBAAt(x1, y1)

	mix := func(a, b, c, d uint8) uint8 {
		top := lerp(float64(a), float64(b), fx)
		bottom := lerp(float64(c), float64(d), fx)
		return uint8(lerp(top, bottom, fy) + 0.5)
	}
	return color.NRGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
