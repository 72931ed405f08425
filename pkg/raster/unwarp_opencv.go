//go:build opencv

package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/geometry"
	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// Unwarp maps the quadrilateral box onto an upright rectangle with OpenCV's
// perspective warp and linear interpolation. Pixels that fall outside the
// source image are black.
func Unwarp(img image.Image, box boundbox.BoundBox) (*image.NRGBA, error) {
	warp, err := box.PerspectiveTransform()
	if err != nil {
		return nil, err
	}

	src, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return nil, fmt.Errorf("convert image to mat: %w", err)
	}
	defer src.Close()

	srcPts := point2fVector(warp.Source)
	defer srcPts.Close()
	dstPts := point2fVector(warp.Destination())
	defer dstPts.Close()

	m := gocv.GetPerspectiveTransform2f(srcPts, dstPts)
	defer m.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpPerspectiveWithParams(src, &dst, m, image.Pt(warp.Width, warp.Height),
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{A: 255})

	out, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert warped mat to image: %w", err)
	}
	return imaging.Clone(out), nil
}

func point2fVector(pts [4]geometry.Point) gocv.Point2fVector {
	fs := make([]gocv.Point2f, 0, len(pts))
	for _, p := range pts {
		fs = append(fs, gocv.Point2f{X: float32(p.X), Y: float32(p.Y)})
	}
	return gocv.NewPoint2fVectorFromPoints(fs)
}
