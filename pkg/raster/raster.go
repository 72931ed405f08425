// Package raster applies box geometry to images: cropping a box out of a page
// and flattening a skewed box into an upright image.
//
// Unwarp runs in pure Go by default. Build with -tags opencv to warp through
// OpenCV (gocv) instead; OpenCV 4 must be installed.
package raster

import (
	"fmt"
	"image"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/disintegration/imaging"

	// additional decoders for scans
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load opens and decodes an image file, honouring EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// Save encodes img in the format implied by the path's extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}

// Crop cuts the axis-aligned region covering box out of img. The region is
// clipped to the image; a region entirely outside it is an error.
func Crop(img image.Image, box boundbox.BoundBox) (image.Image, error) {
	rect, err := box.CropRegion()
	if err != nil {
		return nil, err
	}
	rect = rect.Add(img.Bounds().Min)
	if rect.Intersect(img.Bounds()).Empty() {
		return nil, fmt.Errorf("%w: %v lies outside the %v image", boundbox.ErrDegenerateGeometry, rect, img.Bounds())
	}
	return imaging.Crop(img, rect), nil
}
