package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akashtjohn/boundbox/internal/utils"
	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert OCR engine output into canonical boxes",
	Long: `Convert reads the raw output of an OCR engine and writes its boxes with the
corners in canonical order (top-left, top-right, bottom-right, bottom-left).

Word boxes can be merged into line boxes with --merge-lines.

Examples:
  tesseract page.png - tsv | boundbox convert --adapter tesseract
  boundbox convert --adapter azure --input read.json --level word --format yaml
  boundbox convert --adapter vision --input annotate.json --merge-lines --format hocr -o page.hocr`,
	RunE: runConvert,
}

var (
	convertAdapter    string
	convertInput      string
	convertLevel      string
	convertMergeLines bool
	convertOutput     string
)

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertAdapter, "adapter", "", "Adapter to use: tesseract, azure, vision, hocr, pagexml (required)")
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "-", "Engine output to read (- for stdin)")
	convertCmd.Flags().StringVar(&convertLevel, "level", "", "Layout level to read, e.g. word or line (adapter default if empty)")
	convertCmd.Flags().BoolVar(&convertMergeLines, "merge-lines", false, "Merge word boxes into line boxes")
	addMergeFlags(convertCmd)
	addFormatFlag(convertCmd)
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (prints to stdout if not specified)")

	err := convertCmd.MarkFlagRequired("adapter")
	if err != nil {
		slog.Error("Unable to mark adapter as required", "err", err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	adapter, err := newRegistry().Get(convertAdapter)
	if err != nil {
		return fmt.Errorf("unsupported adapter: %w", err)
	}
	if err := configureAdapter(adapter, convertLevel); err != nil {
		return err
	}

	payload, err := utils.ReadInput(convertInput)
	if err != nil {
		return err
	}

	boxes, err := adapters.ParseBoxes(adapter, payload)
	if err != nil {
		return err
	}
	slog.Info("Converted engine output", "adapter", adapter.Name(), "boxes", len(boxes))

	if convertMergeLines {
		opts, err := mergeOptions(cmd)
		if err != nil {
			return err
		}
		boxes = boundbox.MergeLines(boxes, opts)
		slog.Info("Merged lines", "lines", len(boxes))
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	return writeBoxes(cmd.OutOrStdout(), convertOutput, format, boxes)
}
