package boundbox

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// Line merge thresholds. They are empirical and can be retuned via MergeOptions.
const (
	// DefaultDX is the largest horizontal gap between neighbouring words, as a
	// multiple of the line height.
	DefaultDX = 1.0

	// DefaultMaxAngleDegrees is the largest difference in bottom-edge angle.
	DefaultMaxAngleDegrees = 5.0

	// DefaultBaselineRatio bounds the vertical offset of the baselines as a
	// fraction of the line height.
	DefaultBaselineRatio = 1.0 / 3.0

	// DefaultEdgeRatio bounds the difference in height of the facing edges as a
	// fraction of the distance spanned by the pair.
	DefaultEdgeRatio = 1.0 / 10.0
)

// MergeOptions tunes MergeLines.
type MergeOptions struct {
	DX              float64 `mapstructure:"dx" yaml:"dx" json:"dx"`
	MaxAngleDegrees float64 `mapstructure:"max_angle_degrees" yaml:"max_angle_degrees" json:"max_angle_degrees"`
	BaselineRatio   float64 `mapstructure:"baseline_ratio" yaml:"baseline_ratio" json:"baseline_ratio"`
	EdgeRatio       float64 `mapstructure:"edge_ratio" yaml:"edge_ratio" json:"edge_ratio"`
}

// DefaultMergeOptions returns the stock thresholds.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		DX:              DefaultDX,
		MaxAngleDegrees: DefaultMaxAngleDegrees,
		BaselineRatio:   DefaultBaselineRatio,
		EdgeRatio:       DefaultEdgeRatio,
	}
}

// Validate rejects negative or non-finite thresholds.
func (o MergeOptions) Validate() error {
	values := []struct {
		name string
		v    float64
	}{
		{"dx", o.DX},
		{"max_angle_degrees", o.MaxAngleDegrees},
		{"baseline_ratio", o.BaselineRatio},
		{"edge_ratio", o.EdgeRatio},
	}
	for _, opt := range values {
		if math.IsNaN(opt.v) || math.IsInf(opt.v, 0) || opt.v < 0 {
			return fmt.Errorf("merge option %s must be a non-negative number, got %v", opt.name, opt.v)
		}
	}
	return nil
}

// MergeLines reassembles word boxes into line boxes.
//
// Boxes are visited left to right. The first unprocessed box seeds an accumulator
// and every later unprocessed box that is Compatible with the accumulator, as it
// stands at that moment, is merged into it with MergeHorizontal. The finished
// lines are returned top to bottom. This is a greedy heuristic: the order in which
// words join decides which chains can form. boxes is not modified.
func MergeLines(boxes []BoundBox, opts MergeOptions) []BoundBox {
	sorted := make([]BoundBox, 0, len(boxes))
	for _, box := range boxes {
		if !box.IsVoid() {
			sorted = append(sorted, box)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].p[0].X < sorted[j].p[0].X
	})

	processed := make([]bool, len(sorted))
	var lines []BoundBox

	for i := range sorted {
		if processed[i] {
			continue
		}
		processed[i] = true
		acc := sorted[i]
		words := 1

		for j := i + 1; j < len(sorted); j++ {
			if processed[j] {
				continue
			}
			if Compatible(acc, sorted[j], opts) {
				acc = MergeHorizontal(acc, sorted[j])
				processed[j] = true
				words++
			}
		}

		slog.Debug("Merged line", "words", words, "text", acc.Text)
		lines = append(lines, acc)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].p[0].Y < lines[j].p[0].Y
	})
	return lines
}

// Compatible reports whether right can extend left on the same text line.
func Compatible(left, right BoundBox, opts MergeOptions) bool {
	a, b := left.p, right.p
	height := a[1].Sub(a[2])

	// facing edges must be about as tall as each other
	if math.Abs(height-b[0].Sub(b[3])) > opts.EdgeRatio*a[1].Sub(b[2]) {
		return false
	}

	if math.Abs(toDegrees(left.Angle())-toDegrees(right.Angle())) > opts.MaxAngleDegrees {
		return false
	}

	if math.Abs(a[2].Y-b[3].Y) > opts.BaselineRatio*height {
		return false
	}

	if a[1].X < b[0].X {
		gap := ((b[0].X - a[1].X) + (b[3].X - a[2].X)) / 2
		return gap <= opts.DX*height
	}

	if a[0].X > b[1].X {
		return false
	}

	return true
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
