// Package pagexml reads PAGE XML layout files as written by Transkribus,
// eScriptorium, OCR-D and tesseract's PAGE renderer.
package pagexml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/geometry"
)

// Level selects which PAGE elements become detections.
type Level int

const (
	// LevelLine reads TextLine elements.
	LevelLine Level = iota
	// LevelWord reads Word elements.
	LevelWord
	// LevelRegion reads TextRegion elements.
	LevelRegion
)

type document struct {
	Pages []page `xml:"Page"`
}

type page struct {
	Filename string   `xml:"imageFilename,attr"`
	Width    int      `xml:"imageWidth,attr"`
	Height   int      `xml:"imageHeight,attr"`
	Regions  []region `xml:"TextRegion"`
	Tables   []region `xml:"TableRegion"`
}

type region struct {
	ID        string      `xml:"id,attr"`
	Coords    coords      `xml:"Coords"`
	Regions   []region    `xml:"TextRegion"`
	Lines     []textLine  `xml:"TextLine"`
	TextEquiv []textEquiv `xml:"TextEquiv"`
}

type textLine struct {
	ID        string      `xml:"id,attr"`
	Coords    coords      `xml:"Coords"`
	Words     []word      `xml:"Word"`
	TextEquiv []textEquiv `xml:"TextEquiv"`
}

type word struct {
	ID        string      `xml:"id,attr"`
	Coords    coords      `xml:"Coords"`
	TextEquiv []textEquiv `xml:"TextEquiv"`
}

type textEquiv struct {
	Index   string `xml:"index,attr"`
	Unicode string `xml:"Unicode"`
}

// coords holds either the points attribute or, in the 2010 schema, Point children.
type coords struct {
	Points string       `xml:"points,attr"`
	Point  []coordPoint `xml:"Point"`
}

type coordPoint struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// Adapter implements adapters.Adapter for PAGE XML.
type Adapter struct {
	Level Level
}

// New creates a new PAGE XML adapter reading text lines
func New() *Adapter {
	return &Adapter{Level: LevelLine}
}

// Name returns the adapter name
func (a *Adapter) Name() string {
	return "pagexml"
}

// Parse returns the selected elements in document order. Polygons that do not
// have exactly four points are reduced to their axis-aligned bounds.
func (a *Adapter) Parse(payload []byte) ([]adapters.Detection, error) {
	var doc document
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode page xml: %w", err)
	}

	var dets []adapters.Detection
	for _, p := range doc.Pages {
		regions := append(append([]region(nil), p.Regions...), p.Tables...)
		for _, r := range regions {
			d, err := a.region(r)
			if err != nil {
				return nil, err
			}
			dets = append(dets, d...)
		}
	}
	return dets, nil
}

func (a *Adapter) region(r region) ([]adapters.Detection, error) {
	var dets []adapters.Detection

	if a.Level == LevelRegion && len(r.Lines) > 0 {
		d, err := detection(r.ID, r.Coords, regionText(r))
		if err != nil {
			return nil, err
		}
		dets = append(dets, d)
	}

	if a.Level != LevelRegion {
		for _, l := range r.Lines {
			if a.Level == LevelLine {
				d, err := detection(l.ID, l.Coords, lineText(l))
				if err != nil {
					return nil, err
				}
				dets = append(dets, d)
				continue
			}
			for _, w := range l.Words {
				d, err := detection(w.ID, w.Coords, transcription(w.TextEquiv))
				if err != nil {
					return nil, err
				}
				dets = append(dets, d)
			}
		}
	}

	for _, child := range r.Regions {
		d, err := a.region(child)
		if err != nil {
			return nil, err
		}
		dets = append(dets, d...)
	}
	return dets, nil
}

func detection(id string, c coords, text string) (adapters.Detection, error) {
	pts, err := c.points()
	if err != nil {
		return adapters.Detection{}, fmt.Errorf("element %q: %w", id, err)
	}
	return adapters.Detection{Corners: adapters.Bounds(pts), Text: adapters.CleanText(text)}, nil
}

func (c coords) points() ([]geometry.Point, error) {
	if len(c.Point) > 0 {
		pts := make([]geometry.Point, 0, len(c.Point))
		for _, p := range c.Point {
			pts = append(pts, geometry.NewPoint(p.X, p.Y))
		}
		return pts, nil
	}
	return ParsePoints(c.Points)
}

// ParsePoints reads a PAGE points attribute such as "10,20 30,20 30,40 10,40".
func ParsePoints(s string) ([]geometry.Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty points", geometry.ErrInvalidCoordinate)
	}
	pts := make([]geometry.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%w: point %q is not x,y", geometry.ErrInvalidCoordinate, f)
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: point %q", geometry.ErrInvalidCoordinate, f)
		}
		pts = append(pts, geometry.NewPoint(x, y))
	}
	return pts, nil
}

// transcription returns the preferred transcription: index 0 if present, else the first.
func transcription(equivs []textEquiv) string {
	for _, e := range equivs {
		if e.Index == "0" {
			return e.Unicode
		}
	}
	if len(equivs) > 0 {
		return equivs[0].Unicode
	}
	return ""
}

func lineText(l textLine) string {
	if t := transcription(l.TextEquiv); t != "" {
		return t
	}
	words := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if t := strings.TrimSpace(transcription(w.TextEquiv)); t != "" {
			words = append(words, t)
		}
	}
	return strings.Join(words, " ")
}

func regionText(r region) string {
	if t := transcription(r.TextEquiv); t != "" {
		return t
	}
	lines := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		if t := strings.TrimSpace(lineText(l)); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}
