// Package chart provides ASCII terminal bar charts for forecast series.
// One bar per point, labels on the left, values next to the bars. Negative
// values (winter temperatures) are drawn from a shared zero baseline so
// that bar lengths stay comparable across the chart.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Point is one labeled value in a chart series.
type Point struct {
	Label string
	Value float64
}

// BarOptions controls horizontal bar chart rendering.
type BarOptions struct {
	// Width is the total character width available for the chart.
	// If 0, auto-detects from $COLUMNS, falls back to 80.
	Width int
}

// Bar renders a horizontal bar chart of points to w, one bar per point.
//
// Output example:
//
//	temperature (°C)
//	Thu 20  17  ██████████████████
//	Fri 21  12  ████████████
//	Sat 22  -3  ▒▒▒
func Bar(w io.Writer, title string, points []Point, opts BarOptions) error {
	// Filter out NaN points — gaps, not zeros.
	var valid []Point
	for _, p := range points {
		if !math.IsNaN(p.Value) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return fmt.Errorf("chart: no values to render")
	}

	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = termWidth()
	}

	minVal, maxVal := valid[0].Value, valid[0].Value
	for _, p := range valid[1:] {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	labelWidth := 0
	valWidth := 0
	for _, p := range valid {
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
		if l := len(formatValue(p.Value)); l > valWidth {
			valWidth = l
		}
	}

	// Bars scale against the largest magnitude from the zero baseline.
	span := math.Max(math.Abs(minVal), math.Abs(maxVal))
	barWidth := totalWidth - labelWidth - valWidth - 4
	if barWidth < 8 {
		barWidth = 8
	}

	if title != "" {
		fmt.Fprintln(w, title)
	}
	for _, p := range valid {
		length := 0
		if span > 0 {
			length = int(math.Round(math.Abs(p.Value) / span * float64(barWidth)))
		}
		if length == 0 && p.Value != 0 {
			length = 1
		}
		glyph := "█"
		if p.Value < 0 {
			glyph = "▒"
		}
		fmt.Fprintf(w, "%-*s  %*s  %s\n",
			labelWidth, p.Label,
			valWidth, formatValue(p.Value),
			strings.Repeat(glyph, length))
	}
	return nil
}

// formatValue renders a value compactly, dropping trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// termWidth returns the terminal width from $COLUMNS, defaulting to 80.
func termWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 20 {
			return n
		}
	}
	return 80
}
