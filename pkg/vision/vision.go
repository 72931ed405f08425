// Package vision reads Google Cloud Vision text detection results.
//
// Responses are decoded with protojson into the visionpb types, so payloads saved
// from the REST API, the client library or gcloud all work. A batch response
// ({"responses": [...]}) is flattened in order.
package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/geometry"
	"google.golang.org/protobuf/encoding/protojson"
)

// Level selects which layout elements become detections.
type Level int

const (
	// LevelWord reads fullTextAnnotation words, their text joined from symbols.
	LevelWord Level = iota
	// LevelParagraph reads fullTextAnnotation paragraphs.
	LevelParagraph
	// LevelBlock reads fullTextAnnotation blocks.
	LevelBlock
	// LevelAnnotation reads textAnnotations, skipping the first entry which
	// covers the whole image.
	LevelAnnotation
)

var unmarshal = protojson.UnmarshalOptions{DiscardUnknown: true}

// Adapter implements adapters.Adapter for Vision responses.
type Adapter struct {
	Level Level
}

// New creates a new Vision adapter reading words
func New() *Adapter {
	return &Adapter{Level: LevelWord}
}

// Name returns the adapter name
func (a *Adapter) Name() string {
	return "vision"
}

// Parse decodes a single or batch annotate response.
func (a *Adapter) Parse(payload []byte) ([]adapters.Detection, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}

	if _, ok := probe["responses"]; ok {
		var batch visionpb.BatchAnnotateImagesResponse
		if err := unmarshal.Unmarshal(payload, &batch); err != nil {
			return nil, fmt.Errorf("decode vision batch response: %w", err)
		}
		var dets []adapters.Detection
		for i, resp := range batch.GetResponses() {
			d, err := FromResponse(resp, a.Level)
			if err != nil {
				return nil, fmt.Errorf("response %d: %w", i, err)
			}
			dets = append(dets, d...)
		}
		return dets, nil
	}

	var resp visionpb.AnnotateImageResponse
	if err := unmarshal.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}
	return FromResponse(&resp, a.Level)
}

// FromResponse converts a response obtained with the Vision client library.
func FromResponse(resp *visionpb.AnnotateImageResponse, level Level) ([]adapters.Detection, error) {
	if st := resp.GetError(); st != nil && st.GetCode() != 0 {
		return nil, fmt.Errorf("vision error %d: %s", st.GetCode(), st.GetMessage())
	}

	if level == LevelAnnotation {
		annotations := resp.GetTextAnnotations()
		dets := make([]adapters.Detection, 0, len(annotations))
		for i, ann := range annotations {
			if i == 0 {
				continue
			}
			corners, err := polygon(ann.GetBoundingPoly(), 0, 0)
			if err != nil {
				return nil, fmt.Errorf("text annotation %d: %w", i, err)
			}
			dets = append(dets, adapters.Detection{Corners: corners, Text: adapters.CleanText(ann.GetDescription())})
		}
		return dets, nil
	}

	var dets []adapters.Detection
	for _, page := range resp.GetFullTextAnnotation().GetPages() {
		w, h := page.GetWidth(), page.GetHeight()
		for _, block := range page.GetBlocks() {
			if level == LevelBlock {
				d, err := detection(block.GetBoundingBox(), blockText(block), w, h)
				if err != nil {
					return nil, err
				}
				dets = append(dets, d)
				continue
			}
			for _, para := range block.GetParagraphs() {
				if level == LevelParagraph {
					d, err := detection(para.GetBoundingBox(), paragraphText(para), w, h)
					if err != nil {
						return nil, err
					}
					dets = append(dets, d)
					continue
				}
				for _, word := range para.GetWords() {
					d, err := detection(word.GetBoundingBox(), wordText(word), w, h)
					if err != nil {
						return nil, err
					}
					dets = append(dets, d)
				}
			}
		}
	}
	return dets, nil
}

func detection(poly *visionpb.BoundingPoly, text string, width, height int32) (adapters.Detection, error) {
	corners, err := polygon(poly, width, height)
	if err != nil {
		return adapters.Detection{}, fmt.Errorf("%q: %w", text, err)
	}
	return adapters.Detection{Corners: corners, Text: adapters.CleanText(text)}, nil
}

// polygon reads pixel vertices, falling back to normalized vertices scaled by the
// page size.
func polygon(poly *visionpb.BoundingPoly, width, height int32) ([]geometry.Point, error) {
	var pts []geometry.Point
	for _, v := range poly.GetVertices() {
		pts = append(pts, geometry.NewPoint(float64(v.GetX()), float64(v.GetY())))
	}
	if len(pts) == 0 && width > 0 && height > 0 {
		for _, v := range poly.GetNormalizedVertices() {
			pts = append(pts, geometry.NewPoint(float64(v.GetX())*float64(width), float64(v.GetY())*float64(height)))
		}
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: bounding poly without vertices", geometry.ErrInvalidCoordinate)
	}
	return adapters.Bounds(pts), nil
}

func wordText(word *visionpb.Word) string {
	var sb strings.Builder
	for _, s := range word.GetSymbols() {
		sb.WriteString(s.GetText())
	}
	return sb.String()
}

func paragraphText(para *visionpb.Paragraph) string {
	words := make([]string, 0, len(para.GetWords()))
	for _, w := range para.GetWords() {
		words = append(words, wordText(w))
	}
	return strings.Join(words, " ")
}

func blockText(block *visionpb.Block) string {
	paras := make([]string, 0, len(block.GetParagraphs()))
	for _, p := range block.GetParagraphs() {
		paras = append(paras, paragraphText(p))
	}
	return strings.Join(paras, " ")
}
