// Package tesseract reads word boxes produced by the Tesseract OCR engine.
//
// Two payload shapes are accepted: the TSV written by `tesseract image out tsv`
// and the column dictionary returned by pytesseract's
// image_to_data(img, output_type=Output.DICT), serialised as JSON.
package tesseract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/adapters"
)

// ErrMalformedData is returned when the columns of a result do not line up.
var ErrMalformedData = errors.New("malformed tesseract data")

// Tesseract page layout levels.
const (
	LevelPage = iota + 1
	LevelBlock
	LevelParagraph
	LevelLine
	LevelWord
)

// Data holds an image_to_data result column by column. Entry i of every column
// describes the same layout element.
type Data struct {
	Level    []int        `json:"level"`
	PageNum  []int        `json:"page_num,omitempty"`
	BlockNum []int        `json:"block_num,omitempty"`
	ParNum   []int        `json:"par_num,omitempty"`
	LineNum  []int        `json:"line_num,omitempty"`
	WordNum  []int        `json:"word_num,omitempty"`
	Left     []float64    `json:"left"`
	Top      []float64    `json:"top"`
	Width    []float64    `json:"width"`
	Height   []float64    `json:"height"`
	Conf     []Confidence `json:"conf,omitempty"`
	Text     []string     `json:"text"`
}

// Confidence is a word confidence in percent, -1 for layout entries. Older
// pytesseract releases emit it as a string.
type Confidence float64

// UnmarshalJSON accepts both numbers and numeric strings.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: confidence %s: %v", ErrMalformedData, data, err)
	}
	*c = Confidence(v)
	return nil
}

// Validate checks that the geometry and text columns have the same length.
func (d Data) Validate() error {
	n := len(d.Level)
	columns := []struct {
		name string
		len  int
	}{
		{"left", len(d.Left)},
		{"top", len(d.Top)},
		{"width", len(d.Width)},
		{"height", len(d.Height)},
		{"text", len(d.Text)},
	}
	for _, c := range columns {
		if c.len != n {
			return fmt.Errorf("%w: column %s has %d entries, want %d", ErrMalformedData, c.name, c.len, n)
		}
	}
	if len(d.Conf) != 0 && len(d.Conf) != n {
		return fmt.Errorf("%w: column conf has %d entries, want %d", ErrMalformedData, len(d.Conf), n)
	}
	return nil
}

// Detections turns every entry into an axis-aligned detection. When skipEmpty is
// set, entries without text (pages, blocks, paragraphs, lines and blank words)
// are left out.
func (d Data) Detections(skipEmpty bool) ([]adapters.Detection, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	dets := make([]adapters.Detection, 0, len(d.Level))
	for i := range d.Level {
		text := adapters.CleanText(d.Text[i])
		if skipEmpty && text == "" {
			continue
		}
		dets = append(dets, adapters.Detection{
			Corners: adapters.Rect(d.Left[i], d.Top[i], d.Width[i], d.Height[i]),
			Text:    text,
		})
	}
	return dets, nil
}

// Adapter implements adapters.Adapter for Tesseract output.
type Adapter struct {
	// KeepEmpty keeps layout entries that carry no text.
	KeepEmpty bool
}

// New creates a new Tesseract adapter
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name
func (a *Adapter) Name() string {
	return "tesseract"
}

// Parse accepts either the JSON column dictionary or TSV output.
func (a *Adapter) Parse(payload []byte) ([]adapters.Detection, error) {
	data, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	return data.Detections(!a.KeepEmpty)
}

// Decode reads a payload into Data, sniffing JSON by its leading brace.
func Decode(payload []byte) (Data, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var d Data
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return Data{}, fmt.Errorf("decode tesseract dict: %w", err)
		}
		return d, nil
	}
	return ParseTSV(bytes.NewReader(payload))
}

// ParseTSV reads the tab separated output of `tesseract image out tsv`. Fields
// are split on tabs only; quotes in recognised text are ordinary characters.
func ParseTSV(r io.Reader) (Data, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Data{}, fmt.Errorf("read tsv header: %w", err)
		}
		return Data{}, fmt.Errorf("%w: empty tsv", ErrMalformedData)
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\t")

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"level", "left", "top", "width", "height", "text"} {
		if _, ok := index[name]; !ok {
			return Data{}, fmt.Errorf("%w: tsv has no %s column", ErrMalformedData, name)
		}
	}

	var d Data
	for line := 2; scanner.Scan(); line++ {
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		record := strings.Split(raw, "\t")

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		number := func(name string) (float64, error) {
			v, err := strconv.ParseFloat(field(name), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: line %d column %s: %v", ErrMalformedData, line, name, err)
			}
			return v, nil
		}

		var (
			geom [4]float64
			err  error
		)
		for i, name := range []string{"left", "top", "width", "height"} {
			if geom[i], err = number(name); err != nil {
				return Data{}, err
			}
		}
		level, err := strconv.Atoi(field("level"))
		if err != nil {
			return Data{}, fmt.Errorf("%w: line %d column level: %v", ErrMalformedData, line, err)
		}
		conf := -1.0
		if _, ok := index["conf"]; ok {
			if conf, err = number("conf"); err != nil {
				return Data{}, err
			}
		}

		text := ""
		if i := index["text"]; i < len(record) {
			text = record[i]
		}

		d.Level = append(d.Level, level)
		d.Left = append(d.Left, geom[0])
		d.Top = append(d.Top, geom[1])
		d.Width = append(d.Width, geom[2])
		d.Height = append(d.Height, geom[3])
		d.Conf = append(d.Conf, Confidence(conf))
		d.Text = append(d.Text, text)
	}
	if err := scanner.Err(); err != nil {
		return Data{}, fmt.Errorf("read tsv: %w", err)
	}
	return d, nil
}
