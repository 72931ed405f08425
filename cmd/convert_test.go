package cmd

import (
	"encoding/json"
	"testing"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

const tesseractTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t200\t100\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t0\t0\t50\t20\t95\thello\n" +
	"5\t1\t1\t1\t1\t2\t60\t0\t40\t20\t93\tworld\n"

func decodeRecords(t *testing.T, out string) []boundbox.Record {
	t.Helper()
	var records []boundbox.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	return records
}

func TestConvert(t *testing.T) {
	input := writeFile(t, "page.tsv", tesseractTSV)

	tests := []struct {
		name        string
		args        []string
		wantText    []string
		wantCorners [][]float64
	}{
		{
			name:        "words",
			args:        []string{"convert", "--adapter", "tesseract", "--input", input},
			wantText:    []string{"hello", "world"},
			wantCorners: [][]float64{{0, 0}, {50, 0}, {50, 20}, {0, 20}},
		},
		{
			name:        "adapter name is case insensitive",
			args:        []string{"convert", "--adapter", "Tesseract", "-i", input},
			wantText:    []string{"hello", "world"},
			wantCorners: [][]float64{{0, 0}, {50, 0}, {50, 20}, {0, 20}},
		},
		{
			name:        "merged lines",
			args:        []string{"convert", "--adapter", "tesseract", "--input", input, "--merge-lines"},
			wantText:    []string{"hello world"},
			wantCorners: [][]float64{{0, 0}, {100, 0}, {100, 20}, {0, 20}},
		},
		{
			name:        "tight gap keeps words apart",
			args:        []string{"convert", "--adapter", "tesseract", "--input", input, "--merge-lines", "--dx", "0.1"},
			wantText:    []string{"hello", "world"},
			wantCorners: [][]float64{{0, 0}, {50, 0}, {50, 20}, {0, 20}},
		},
		{
			name:        "layout entries kept",
			args:        []string{"convert", "--adapter", "tesseract", "--input", input, "--level", "all"},
			wantText:    []string{"", "hello", "world"},
			wantCorners: [][]float64{{0, 0}, {200, 0}, {200, 100}, {0, 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)

			records := decodeRecords(t, out)
			var text []string
			for _, r := range records {
				text = append(text, r.Text)
			}
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCorners, records[0].Corners)
		})
	}
}

func TestConvertFormats(t *testing.T) {
	input := writeFile(t, "page.tsv", tesseractTSV)

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "convert", "--adapter", "tesseract", "--input", input, "--format", "yaml")
		require.NoError(t, err)

		var records []boundbox.Record
		require.NoError(t, yaml.Unmarshal([]byte(out), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "world", records[1].Text)
		assert.Equal(t, [][]float64{{60, 0}, {100, 0}, {100, 20}, {60, 20}}, records[1].Corners)
	})

	t.Run("hocr", func(t *testing.T) {
		out, err := execute(t, "convert", "--adapter", "tesseract", "--input", input, "--format", "hocr")
		require.NoError(t, err)
		assert.Contains(t, out, "ocr_page")
		assert.Contains(t, out, "bbox 60 0 100 20")
		assert.Contains(t, out, ">world<")
	})

	t.Run("to file", func(t *testing.T) {
		dest := writeFile(t, "out.json", "")
		out, err := execute(t, "convert", "--adapter", "tesseract", "--input", input, "-o", dest)
		require.NoError(t, err)
		assert.Empty(t, out)

		boxes, err := readBoxes(dest)
		require.NoError(t, err)
		require.Len(t, boxes, 2)
		assert.Equal(t, "hello", boxes[0].Text)
	})
}

func TestConvertErrors(t *testing.T) {
	input := writeFile(t, "page.tsv", tesseractTSV)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "adapter is required",
			args:    []string{"convert", "--input", input},
			wantErr: "adapter",
		},
		{
			name:    "unknown adapter",
			args:    []string{"convert", "--adapter", "abbyy", "--input", input},
			wantErr: "available: azure, hocr, pagexml, tesseract, vision",
		},
		{
			name:    "unknown level",
			args:    []string{"convert", "--adapter", "azure", "--input", input, "--level", "glyph"},
			wantErr: "unsupported level",
		},
		{
			name:    "unknown format",
			args:    []string{"convert", "--adapter", "tesseract", "--input", input, "--format", "pdf"},
			wantErr: "unsupported output format",
		},
		{
			name:    "negative gap",
			args:    []string{"convert", "--adapter", "tesseract", "--input", input, "--merge-lines", "--dx=-1"},
			wantErr: "dx",
		},
		{
			name:    "payload the adapter cannot read",
			args:    []string{"convert", "--adapter", "tesseract", "--input", writeFile(t, "bad.tsv", "level\tleft\n5\t0\n")},
			wantErr: "tesseract: malformed tesseract data",
		},
		{
			name:    "missing input",
			args:    []string{"convert", "--adapter", "tesseract", "--input", "does-not-exist.tsv"},
			wantErr: "does-not-exist.tsv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
