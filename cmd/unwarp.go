package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/raster"
	"github.com/spf13/cobra"
)

var unwarpCmd = &cobra.Command{
	Use:   "unwarp",
	Short: "Flatten a quadrilateral region of an image",
	Long: `Unwarp maps the quadrilateral given by four corners onto an upright rectangle
sized from the quadrilateral's longest edges. Corners can be given in any order.

Example:
  boundbox unwarp --image page.jpg --corners "429,48 113,96 129,415 430,423" -o flat.png`,
	RunE: runUnwarp,
}

var (
	unwarpImage   string
	unwarpCorners string
	unwarpOutput  string
)

func init() {
	RootCmd.AddCommand(unwarpCmd)

	unwarpCmd.Flags().StringVar(&unwarpImage, "image", "", "Path to input image file (required)")
	unwarpCmd.Flags().StringVar(&unwarpCorners, "corners", "", `Four "x,y" corners separated by spaces (required)`)
	unwarpCmd.Flags().StringVarP(&unwarpOutput, "output", "o", "", "Output image path (required)")

	for _, name := range []string{"image", "corners", "output"} {
		if err := unwarpCmd.MarkFlagRequired(name); err != nil {
			slog.Error("Unable to mark flag as required", "flag", name, "err", err)
			os.Exit(1)
		}
	}
}

func runUnwarp(cmd *cobra.Command, args []string) error {
	box, err := parseCorners(unwarpCorners)
	if err != nil {
		return err
	}
	img, err := raster.Load(unwarpImage)
	if err != nil {
		return err
	}

	flat, err := raster.Unwarp(img, box)
	if err != nil {
		return err
	}
	slog.Info("Unwarped region", "box", box.String(), "width", flat.Bounds().Dx(), "height", flat.Bounds().Dy())
	return raster.Save(flat, unwarpOutput)
}

// parseCorners reads "x,y x,y x,y x,y" into a canonical box.
func parseCorners(s string) (boundbox.BoundBox, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return boundbox.BoundBox{}, fmt.Errorf("corners: want 4 x,y pairs, got %d", len(fields))
	}

	pts := make([][]float64, 0, 4)
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return boundbox.BoundBox{}, fmt.Errorf("corners: %q is not an x,y pair", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return boundbox.BoundBox{}, fmt.Errorf("corners: %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return boundbox.BoundBox{}, fmt.Errorf("corners: %q: %w", f, err)
		}
		pts = append(pts, []float64{x, y})
	}
	return boundbox.FromArray(pts, "")
}
