package commands

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

func printCounts(out io.Writer, positives, negatives int) {
	fmt.Fprintf(out, "Number of positives: %d, negatives: %d\n", positives, negatives)
}

// formatList renders ids as ['a', 'b'].
func formatList(items []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(item)
		sb.WriteByte('\'')
	}
	sb.WriteByte(']')
	return sb.String()
}

// formatFloat prints the shortest exact form, keeping a decimal point on
// integral values ("1.0") and "nan" for NaN.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
