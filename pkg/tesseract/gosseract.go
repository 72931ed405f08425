//go:build ocr

package tesseract

import (
	"errors"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// ErrOCRNotEnabled is returned by Recognize when the binding was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Enabled reports whether the gosseract binding was compiled in.
func Enabled() bool { return true }

// Recognize runs Tesseract over the image at path and returns its word boxes.
// With no languages Tesseract's default is used.
func Recognize(path string, languages ...string) (Data, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return Data{}, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return Data{}, fmt.Errorf("set image %s: %w", path, err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Data{}, fmt.Errorf("recognize %s: %w", path, err)
	}
	return FromBoundingBoxes(boxes), nil
}

// FromBoundingBoxes converts the result of a caller-run
// Client.GetBoundingBoxes(gosseract.RIL_WORD) into the image_to_data layout.
func FromBoundingBoxes(boxes []gosseract.BoundingBox) Data {
	var d Data
	for _, b := range boxes {
		d.Level = append(d.Level, LevelWord)
		d.BlockNum = append(d.BlockNum, b.BlockNum)
		d.ParNum = append(d.ParNum, b.ParNum)
		d.LineNum = append(d.LineNum, b.LineNum)
		d.WordNum = append(d.WordNum, b.WordNum)
		d.Left = append(d.Left, float64(b.Box.Min.X))
		d.Top = append(d.Top, float64(b.Box.Min.Y))
		d.Width = append(d.Width, float64(b.Box.Dx()))
		d.Height = append(d.Height, float64(b.Box.Dy()))
		d.Conf = append(d.Conf, Confidence(b.Confidence))
		d.Text = append(d.Text, b.Word)
	}
	return d
}
