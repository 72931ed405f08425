// Package hocr reads and writes hOCR, the HTML microformat for OCR output.
package hocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/geometry"
	"golang.org/x/net/html"
)

// Level selects which hOCR elements become detections.
type Level int

const (
	// LevelWord reads ocrx_word elements.
	LevelWord Level = iota
	// LevelLine reads ocr_line and the other line-like elements.
	LevelLine
)

var lineClasses = []string{"ocr_line", "ocrx_line", "ocr_textfloat", "ocr_header", "ocr_caption"}

// Adapter implements adapters.Adapter for hOCR documents.
type Adapter struct {
	Level Level
}

// New creates a new hOCR adapter reading words
func New() *Adapter {
	return &Adapter{Level: LevelWord}
}

// Name returns the adapter name
func (a *Adapter) Name() string {
	return "hocr"
}

// Parse walks the document and returns the selected elements in document order.
func (a *Adapter) Parse(payload []byte) ([]adapters.Detection, error) {
	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parse hocr: %w", err)
	}

	var (
		dets    []adapters.Detection
		walkErr error
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode && a.matches(attr(n, "class")) {
			title := attr(n, "title")
			corners, err := ParseBBox(title)
			if err != nil {
				walkErr = fmt.Errorf("element %s id=%q: %w", n.Data, attr(n, "id"), err)
				return
			}
			dets = append(dets, adapters.Detection{
				Corners: corners,
				Text:    adapters.CleanText(strings.Join(strings.Fields(textContent(n)), " ")),
			})
			// hOCR elements of one level do not nest
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if walkErr != nil {
		return nil, walkErr
	}
	return dets, nil
}

func (a *Adapter) matches(class string) bool {
	for _, c := range strings.Fields(class) {
		if a.Level == LevelWord && c == "ocrx_word" {
			return true
		}
		if a.Level == LevelLine {
			for _, lc := range lineClasses {
				if c == lc {
					return true
				}
			}
		}
	}
	return false
}

// ParseBBox reads the bbox property of an hOCR title attribute, for example
// "bbox 36 92 297 146; x_wconf 95".
func ParseBBox(title string) ([]geometry.Point, error) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) == 0 || fields[0] != "bbox" {
			continue
		}
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: bbox wants 4 values, got %q", geometry.ErrInvalidCoordinate, prop)
		}
		var v [4]float64
		for i, f := range fields[1:] {
			n, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bbox value %q", geometry.ErrInvalidCoordinate, f)
			}
			v[i] = n
		}
		return []geometry.Point{geometry.NewPoint(v[0], v[1]), geometry.NewPoint(v[2], v[3])}, nil
	}
	return nil, fmt.Errorf("%w: no bbox in title %q", geometry.ErrInvalidCoordinate, title)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
