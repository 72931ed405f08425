package boundbox

import (
	"encoding/json"
	"math"
)

// Record is the serialised form of a box: its text and its corners as [x, y] pairs.
// A record without corners is the void box.
type Record struct {
	Text    string      `json:"text" yaml:"text"`
	Corners [][]float64 `json:"corners,omitempty" yaml:"corners,omitempty"`
}

// Record returns the serialised form of b with corners on the integer grid.
func (b BoundBox) Record() Record {
	r := Record{Text: b.Text}
	if b.IsVoid() {
		return r
	}
	r.Corners = make([][]float64, 0, 4)
	for _, p := range b.p {
		r.Corners = append(r.Corners, []float64{math.Round(p.X), math.Round(p.Y)})
	}
	return r
}

// Box converts a record back into a canonical box.
func (r Record) Box() (BoundBox, error) {
	if len(r.Corners) == 0 {
		return BoundBox{Text: r.Text}, nil
	}
	return FromArray(r.Corners, r.Text)
}

// Records serialises a slice of boxes.
func Records(boxes []BoundBox) []Record {
	out := make([]Record, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, b.Record())
	}
	return out
}

// MarshalJSON encodes b as a Record.
func (b BoundBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Record())
}

// UnmarshalJSON decodes a Record and canonicalizes its corners.
func (b *BoundBox) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	box, err := r.Box()
	if err != nil {
		return err
	}
	*b = box
	return nil
}
