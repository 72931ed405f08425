package cmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akashtjohn/boundbox/pkg/raster"
	"github.com/spf13/cobra"
)

var cropCmd = &cobra.Command{
	Use:   "crop",
	Short: "Cut every box of a box file out of an image",
	Long: `Crop writes one image per box. By default the axis-aligned region covering
the box is cut out; with --unwarp a skewed box is flattened into an upright
rectangle instead. Void boxes are skipped.

Examples:
  boundbox crop --image page.png --boxes lines.json --out-dir lines/
  boundbox crop --image page.jpg --boxes lines.yaml --out-dir lines/ --unwarp`,
	RunE: runCrop,
}

var (
	cropImage  string
	cropBoxes  string
	cropOutDir string
	cropUnwarp bool
	cropExt    string
)

func init() {
	RootCmd.AddCommand(cropCmd)

	cropCmd.Flags().StringVar(&cropImage, "image", "", "Path to input image file (required)")
	cropCmd.Flags().StringVar(&cropBoxes, "boxes", "", "Box file written by convert (required)")
	cropCmd.Flags().StringVar(&cropOutDir, "out-dir", ".", "Directory for the cropped images")
	cropCmd.Flags().BoolVar(&cropUnwarp, "unwarp", false, "Flatten each box with its perspective transform")
	cropCmd.Flags().StringVar(&cropExt, "ext", "png", "Image format of the crops: png, jpg, tif, bmp")

	for _, name := range []string{"image", "boxes"} {
		if err := cropCmd.MarkFlagRequired(name); err != nil {
			slog.Error("Unable to mark flag as required", "flag", name, "err", err)
			os.Exit(1)
		}
	}
}

func runCrop(cmd *cobra.Command, args []string) error {
	img, err := raster.Load(cropImage)
	if err != nil {
		return err
	}
	boxes, err := readBoxes(cropBoxes)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cropOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written := 0
	for i, box := range boxes {
		if box.IsVoid() {
			slog.Debug("Skipping void box", "index", i, "text", box.Text)
			continue
		}

		var out image.Image
		if cropUnwarp {
			out, err = raster.Unwarp(img, box)
		} else {
			out, err = raster.Crop(img, box)
		}
		if err != nil {
			return fmt.Errorf("box %d (%q): %w", i, box.Text, err)
		}

		path := filepath.Join(cropOutDir, fmt.Sprintf("box_%04d.%s", i, cropExt))
		if err := raster.Save(out, path); err != nil {
			return err
		}
		written++
	}

	slog.Info("Cropped boxes", "image", cropImage, "written", written, "dir", cropOutDir)
	return nil
}
