//go:build !ocr

package cmd

import (
	"testing"

	"github.com/akashtjohn/boundbox/pkg/tesseract"
	"github.com/stretchr/testify/assert"
)

func TestRecognizeWithoutOCR(t *testing.T) {
	_, err := execute(t, "recognize", "--image", writeImage(t, 10, 10))
	assert.ErrorIs(t, err, tesseract.ErrOCRNotEnabled)
}
