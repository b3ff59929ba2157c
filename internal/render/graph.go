package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultGraphHeight = 10

	graphPoint   = "●"
	graphSegment = "─"
	graphRule    = "="
	graphWidth   = 60
	labelWidth   = 3
)

// LineGraph renders values as a row-based ASCII line chart, highest value on
// the top row. Fewer than two samples, or a label count that differs from the
// value count, yields a placeholder naming the title.
func LineGraph(values []float64, labels []string, title string, height int, unit string) string {
	if len(values) < 2 || len(values) != len(labels) {
		return fmt.Sprintf("\n[GRAPH] %s\nInsufficient data for graph display", title)
	}
	if height < 2 {
		height = 2
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	steps := float64(height - 1)
	normalized := make([]float64, len(values))
	for i, v := range values {
		normalized[i] = (v - minVal) / span * steps
	}

	lines := make([]string, 0, height+4)
	lines = append(lines, "\n[GRAPH] "+title, strings.Repeat(graphRule, graphWidth))

	for row := height - 1; row >= 0; row-- {
		r := float64(row)
		var line strings.Builder
		fmt.Fprintf(&line, "%6.1f%s |", maxVal-r*span/steps, unit)

		for i, n := range normalized {
			switch {
			case math.Abs(n-r) < 0.5:
				line.WriteString(graphPoint)
			case i > 0 && between(r, normalized[i-1], n):
				line.WriteString(graphSegment)
			default:
				line.WriteString(" ")
			}
			line.WriteString(" ")
		}
		lines = append(lines, line.String())
	}

	short := make([]string, len(labels))
	for i, label := range labels {
		short[i] = truncate(label, labelWidth)
	}
	lines = append(lines,
		"        +"+strings.Repeat(graphSegment, len(values)*2-1),
		"         "+strings.Join(short, "  "))

	return strings.Join(lines, "\n")
}

func between(v, a, b float64) bool {
	return (a <= v && v <= b) || (b <= v && v <= a)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
