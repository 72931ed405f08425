package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/tesseract"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize",
	Short: "Run Tesseract over an image and write its word boxes",
	Long: `Recognize runs the Tesseract engine in process and writes the recognised
words as canonical boxes. It needs a binary built with -tags ocr and the
Tesseract libraries installed.

Examples:
  boundbox recognize --image page.png
  boundbox recognize --image page.png --lang eng --lang deu --merge-lines --format hocr`,
	RunE: runRecognize,
}

var (
	recognizeImage      string
	recognizeLanguages  []string
	recognizeMergeLines bool
	recognizeOutput     string
)

func init() {
	RootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().StringVar(&recognizeImage, "image", "", "Path to input image file (required)")
	recognizeCmd.Flags().StringSliceVar(&recognizeLanguages, "lang", nil, "Tesseract language, repeatable (engine default if empty)")
	recognizeCmd.Flags().BoolVar(&recognizeMergeLines, "merge-lines", false, "Merge word boxes into line boxes")
	addMergeFlags(recognizeCmd)
	addFormatFlag(recognizeCmd)
	recognizeCmd.Flags().StringVarP(&recognizeOutput, "output", "o", "", "Output path (prints to stdout if not specified)")

	err := recognizeCmd.MarkFlagRequired("image")
	if err != nil {
		slog.Error("Unable to mark image as required", "err", err)
		os.Exit(1)
	}
}

func runRecognize(cmd *cobra.Command, args []string) error {
	if !tesseract.Enabled() {
		return tesseract.ErrOCRNotEnabled
	}
	if _, err := os.Stat(recognizeImage); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("input image file does not exist: %s", recognizeImage)
	}

	data, err := tesseract.Recognize(recognizeImage, recognizeLanguages...)
	if err != nil {
		return err
	}
	dets, err := data.Detections(true)
	if err != nil {
		return err
	}
	boxes, err := adapters.Boxes(dets)
	if err != nil {
		return err
	}
	slog.Info("Recognized words", "image", recognizeImage, "words", len(boxes))

	if recognizeMergeLines {
		opts, err := mergeOptions(cmd)
		if err != nil {
			return err
		}
		boxes = boundbox.MergeLines(boxes, opts)
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	return writeBoxes(cmd.OutOrStdout(), recognizeOutput, format, boxes)
}
