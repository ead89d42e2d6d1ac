package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Point represents a 2D coordinate
type Point struct {
	X float64
	Y float64
}

// Series is one diagram along a member or beam
type Series struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// ASCIIPlot renders a diagram as a terminal chart
func ASCIIPlot(title string, ys []float64, height int) string {
	if len(ys) == 0 {
		return ""
	}
	if height <= 0 {
		height = 10
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(len(ys)),
		asciigraph.Precision(2),
		asciigraph.Caption(title),
	}
	// a flat diagram has no range to scale to
	if flat(ys) {
		opts = append(opts, asciigraph.LowerBound(ys[0]-1), asciigraph.UpperBound(ys[0]+1))
	}
	return asciigraph.Plot(ys, opts...)
}

func flat(ys []float64) bool {
	for _, y := range ys {
		if y != ys[0] {
			return false
		}
	}
	return true
}

// Support symbols used by DrawSupports
var supportSymbols = map[string]string{
	"fixed":  "▌",
	"pinned": "▲",
	"roller": "○",
	"free":   "┤",
}

// DrawSupports sketches a beam elevation of the given width with a symbol
// under each support position
func DrawSupports(positions []float64, supports []string, ids []string, width int) string {
	if len(positions) == 0 || width < 2 {
		return ""
	}
	lo, hi := positions[0], positions[0]
	for _, x := range positions {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	span := hi - lo
	col := func(x float64) int {
		if span == 0 {
			return 0
		}
		return int(math.Round((x - lo) / span * float64(width-1)))
	}

	beam := []rune(strings.Repeat("═", width))
	marks := []rune(strings.Repeat(" ", width))
	labels := []rune(strings.Repeat(" ", width+8))
	for k, x := range positions {
		c := col(x)
		if sym, ok := supportSymbols[supports[k]]; ok {
			marks[c] = []rune(sym)[0]
		}
		for n, r := range ids[k] {
			if c+n < len(labels) {
				labels[c+n] = r
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("  " + string(beam) + "\n")
	sb.WriteString("  " + string(marks) + "\n")
	sb.WriteString("  " + strings.TrimRight(string(labels), " ") + "\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
