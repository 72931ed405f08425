package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/akashtjohn/boundbox/internal/config"
	"github.com/akashtjohn/boundbox/internal/utils"
	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/hocr"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Output format: json, yaml, hocr (default from config, json)")
}

// outputFormat returns --format when given and the configured format otherwise.
func outputFormat(cmd *cobra.Command) (string, error) {
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	if err := config.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func addMergeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("dx", boundbox.DefaultDX, "Largest word gap when merging lines, in line heights")
	cmd.Flags().Float64("max-angle", boundbox.DefaultMaxAngleDegrees, "Largest bottom-edge angle difference when merging lines, in degrees")
}

// mergeOptions overlays the merge flags that were set on the configured options.
func mergeOptions(cmd *cobra.Command) (boundbox.MergeOptions, error) {
	opts := cfg.Merge
	if cmd.Flags().Changed("dx") {
		opts.DX, _ = cmd.Flags().GetFloat64("dx")
	}
	if cmd.Flags().Changed("max-angle") {
		opts.MaxAngleDegrees, _ = cmd.Flags().GetFloat64("max-angle")
	}
	return opts, opts.Validate()
}

// renderBoxes serialises boxes in one of the config output formats.
func renderBoxes(boxes []boundbox.BoundBox, format string) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(boundbox.Records(boxes), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	case config.FormatYAML:
		data, err := yaml.Marshal(boundbox.Records(boxes))
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return data, nil
	case config.FormatHOCR:
		return []byte(hocr.ConvertToHOCR(boxes) + "\n"), nil
	}
	return nil, config.ValidateFormat(format)
}

// writeBoxes renders boxes and writes them to path, or to w for stdout.
func writeBoxes(w io.Writer, path, format string, boxes []boundbox.BoundBox) error {
	data, err := renderBoxes(boxes, format)
	if err != nil {
		return err
	}
	return utils.WriteOutput(w, path, data)
}

// readBoxes loads a box file written by the json or yaml output format. YAML
// is a superset of the JSON we write, so one decoder reads both.
func readBoxes(path string) ([]boundbox.BoundBox, error) {
	data, err := utils.ReadInput(path)
	if err != nil {
		return nil, err
	}

	var records []boundbox.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode boxes from %s: %w", path, err)
	}

	boxes := make([]boundbox.BoundBox, 0, len(records))
	for i, rec := range records {
		b, err := rec.Box()
		if err != nil {
			return nil, fmt.Errorf("box %d in %s: %w", i, path, err)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}
