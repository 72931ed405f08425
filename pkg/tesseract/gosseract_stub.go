//go:build !ocr

package tesseract

import "errors"

// ErrOCRNotEnabled is returned by Recognize when the binding was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Enabled reports whether the gosseract binding was compiled in. Rebuild with
// -tags ocr to run Tesseract in process.
func Enabled() bool { return false }

// Recognize always fails with ErrOCRNotEnabled.
func Recognize(string, ...string) (Data, error) {
	return Data{}, ErrOCRNotEnabled
}
