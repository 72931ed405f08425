// Package azure reads the JSON result of the Azure Computer Vision Read API.
// Both the v3.2 shape (analyzeResult.readResults) and the v4.0 shape
// (analyzeResult.pages) are understood.
package azure

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/geometry"
)

// ErrNotSucceeded is returned for a result whose analysis did not finish.
var ErrNotSucceeded = errors.New("azure analysis did not succeed")

// Level selects which layout elements become detections.
type Level int

const (
	// LevelLine reads one detection per recognised line.
	LevelLine Level = iota
	// LevelWord reads one detection per word.
	LevelWord
)

// Adapter implements adapters.Adapter for Azure Read results.
type Adapter struct {
	Level Level
}

// New creates a new Azure adapter reading lines
func New() *Adapter {
	return &Adapter{Level: LevelLine}
}

// Name returns the adapter name
func (a *Adapter) Name() string {
	return "azure"
}

// Parse returns the detections of every page in page order.
func (a *Adapter) Parse(payload []byte) ([]adapters.Detection, error) {
	pages, err := a.ParsePages(payload)
	if err != nil {
		return nil, err
	}
	var dets []adapters.Detection
	for _, page := range pages {
		dets = append(dets, page...)
	}
	return dets, nil
}

// ParsePages returns one slice of detections per page of the result.
func (a *Adapter) ParsePages(payload []byte) ([][]adapters.Detection, error) {
	var result map[string]interface{}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode azure result: %w", err)
	}

	if status, ok := result["status"].(string); ok && status != "succeeded" {
		return nil, fmt.Errorf("%w: status %q", ErrNotSucceeded, status)
	}

	analyzeResult, ok := result["analyzeResult"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid response format from Azure OCR: no analyzeResult")
	}

	// Try v3.2 format first
	if readResults, ok := analyzeResult["readResults"].([]interface{}); ok {
		return a.readPages(readResults, "text", "boundingBox")
	}
	// v4.0 format as fallback
	if pages, ok := analyzeResult["pages"].([]interface{}); ok {
		return a.readPages(pages, "content", "polygon")
	}
	return nil, nil
}

func (a *Adapter) readPages(pages []interface{}, textKey, polygonKey string) ([][]adapters.Detection, error) {
	out := make([][]adapters.Detection, 0, len(pages))
	for p, page := range pages {
		pageMap, ok := page.(map[string]interface{})
		if !ok {
			continue
		}

		var elements []interface{}
		lines, _ := pageMap["lines"].([]interface{})
		switch {
		case a.Level == LevelLine:
			elements = lines
		case polygonKey == "boundingBox":
			// v3.2 nests words inside their line
			for _, line := range lines {
				lineMap, ok := line.(map[string]interface{})
				if !ok {
					continue
				}
				words, _ := lineMap["words"].([]interface{})
				elements = append(elements, words...)
			}
		default:
			elements, _ = pageMap["words"].([]interface{})
		}

		dets := make([]adapters.Detection, 0, len(elements))
		for i, element := range elements {
			elementMap, ok := element.(map[string]interface{})
			if !ok {
				continue
			}
			text, _ := elementMap[textKey].(string)
			polygon, ok := elementMap[polygonKey]
			if !ok {
				polygon = elementMap["boundingPolygon"]
			}
			corners, err := readPolygon(polygon)
			if err != nil {
				return nil, fmt.Errorf("page %d element %d: %w", p+1, i, err)
			}
			dets = append(dets, adapters.Detection{
				Corners: adapters.Bounds(corners),
				Text:    adapters.CleanText(text),
			})
		}
		out = append(out, dets)
	}
	return out, nil
}

// readPolygon accepts a flat [x0, y0, x1, y1, ...] list or a list of {x, y}
// objects as used by the Image Analysis 4.0 boundingPolygon.
func readPolygon(v interface{}) ([]geometry.Point, error) {
	values, ok := v.([]interface{})
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("%w: missing polygon", geometry.ErrInvalidCoordinate)
	}

	if _, isObject := values[0].(map[string]interface{}); isObject {
		pts := make([]geometry.Point, 0, len(values))
		for _, value := range values {
			m, ok := value.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: mixed polygon entries", geometry.ErrInvalidCoordinate)
			}
			x, xok := m["x"].(float64)
			y, yok := m["y"].(float64)
			if !xok || !yok {
				return nil, fmt.Errorf("%w: polygon vertex without x and y", geometry.ErrInvalidCoordinate)
			}
			pts = append(pts, geometry.NewPoint(x, y))
		}
		return pts, nil
	}

	flat := make([]float64, 0, len(values))
	for _, value := range values {
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: non-numeric polygon coordinate %v", geometry.ErrInvalidCoordinate, value)
		}
		flat = append(flat, f)
	}
	return adapters.Polygon(flat)
}
