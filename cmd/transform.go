package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Rotate, rescale or merge boxes from a box file",
	Long: `Transform reads a box file written by convert (json or yaml) and applies, in
order: rotation about each box's centroid, rescaling, and merging.

Examples:
  boundbox transform --input boxes.json --rotate 90
  boundbox transform --input boxes.yaml --width-ratio 0.5 --height-ratio 0.5
  boundbox transform --input words.json --merge-lines --dx 1.5 --format hocr`,
	RunE: runTransform,
}

var (
	transformInput         string
	transformRotate        float64
	transformAnticlockwise bool
	transformWidthRatio    float64
	transformHeightRatio   float64
	transformMergeLines    bool
	transformMergeAll      bool
	transformOutput        string
)

func init() {
	RootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(&transformInput, "input", "i", "-", "Box file to read (- for stdin)")
	transformCmd.Flags().Float64Var(&transformRotate, "rotate", 0, "Rotate each box about its centroid, in degrees (clockwise on screen)")
	transformCmd.Flags().BoolVar(&transformAnticlockwise, "anticlockwise", false, "Rotate anticlockwise instead")
	transformCmd.Flags().Float64Var(&transformWidthRatio, "width-ratio", 1, "Multiply x coordinates by this ratio")
	transformCmd.Flags().Float64Var(&transformHeightRatio, "height-ratio", 1, "Multiply y coordinates by this ratio")
	transformCmd.Flags().BoolVar(&transformMergeLines, "merge-lines", false, "Merge word boxes into line boxes")
	transformCmd.Flags().BoolVar(&transformMergeAll, "merge-all", false, "Merge every box into a single box")
	addMergeFlags(transformCmd)
	addFormatFlag(transformCmd)
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "Output path (prints to stdout if not specified)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	if transformMergeLines && transformMergeAll {
		return errors.New("--merge-lines and --merge-all are mutually exclusive")
	}

	boxes, err := readBoxes(transformInput)
	if err != nil {
		return err
	}

	for i := range boxes {
		if transformRotate != 0 {
			if err := boxes[i].RotateDegrees(transformRotate, transformAnticlockwise); err != nil {
				return fmt.Errorf("rotate box %d: %w", i, err)
			}
		}
		if transformWidthRatio != 1 || transformHeightRatio != 1 {
			if err := boxes[i].ChangeRatio(transformWidthRatio, transformHeightRatio); err != nil {
				return fmt.Errorf("rescale box %d: %w", i, err)
			}
		}
	}

	switch {
	case transformMergeLines:
		opts, err := mergeOptions(cmd)
		if err != nil {
			return err
		}
		boxes = boundbox.MergeLines(boxes, opts)
	case transformMergeAll:
		boxes = []boundbox.BoundBox{boundbox.MergeAll(boxes...)}
	}
	slog.Info("Transformed boxes", "boxes", len(boxes))

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	return writeBoxes(cmd.OutOrStdout(), transformOutput, format, boxes)
}
