package stats

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	minCurveWidth       = 10
	curveLabelWidth     = 24
	terminalWidthBackup = 80
)

func curveRow(name string, values []float64, width int) []string {
	values = resample(values, width)
	minVal, maxVal := 0.0, 0.0
	for i, v := range values {
		if i == 0 || v < minVal {
			minVal = v
		}
		if i == 0 || v > maxVal {
			maxVal = v
		}
	}
	return []string{name, "|" + Sparkline(values) + "|", fmt.Sprintf("%.1f..%.1f", minVal, maxVal)}
}

func autoCurveWidth() int {
	return CurveWidthFor(terminalWidth())
}

// CurveWidthFor returns the sparkline width that fits in totalWidth columns.
func CurveWidthFor(totalWidth int) int {
	return max(totalWidth-curveLabelWidth, minCurveWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// resample shrinks values to at most width points by bucket averaging.
func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
