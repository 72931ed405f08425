package hocr

import (
	"fmt"
	"math"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"golang.org/x/net/html"
)

// ConvertToHOCR renders boxes as hOCR lines, each holding a single word span
// with the box's text. Void boxes are skipped.
func ConvertToHOCR(boxes []boundbox.BoundBox) string {
	var lines []string

	index := 0
	for _, box := range boxes {
		if box.IsVoid() {
			continue
		}
		index++
		x0, y0, x1, y1 := bbox(box)
		line := fmt.Sprintf(`<span class='ocr_line' id='line_%d' title='bbox %d %d %d %d'><span class='ocrx_word' id='word_%d' title='bbox %d %d %d %d'>%s</span></span>`,
			index, x0, y0, x1, y1,
			index, x0, y0, x1, y1,
			html.EscapeString(box.Text))
		lines = append(lines, line)
	}

	return WrapInHOCRDocument(strings.Join(lines, "\n"))
}

// bbox returns the axis-aligned bounds of the box on the pixel grid.
func bbox(box boundbox.BoundBox) (int, int, int, int) {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range box.Corners() {
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))
}

// WrapInHOCRDocument wraps content in a complete hOCR HTML document
func WrapInHOCRDocument(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
<head>
<title></title>
<meta http-equiv="Content-Type" content="text/html;charset=utf-8" />
<meta name='ocr-system' content='boundbox' />
<meta name='ocr-capabilities' content='ocr_page ocr_line ocrx_word' />
</head>
<body>
<div class='ocr_page' id='page_1'>
%s
</div>
</body>
</html>`, content)
}
