package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ReconfigureIO/hlsflow/models"
)

const (
	// floats never ask for more than this many characters
	floatWidth = 6
	// columns are never shrunk below this when the table is too wide
	minColumnWidth = 8
	defaultWidth   = 80
)

// ServiceConfig holds configuration for rendering.
type ServiceConfig struct {
	TerminalWidth int `env:"HLSFLOW_TERMINAL_WIDTH"`
}

// Terminal writes t as a fixed-width text table no wider than width,
// unless every column is already down to the minimum width.
func Terminal(w io.Writer, t *models.Table, width int) error {
	n := len(t.Header)
	if n == 0 {
		return nil
	}
	widths := columnWidths(t, width)

	out := bufio.NewWriter(w)
	header := make([]string, n)
	rule := make([]string, n)
	for i, h := range t.Header {
		header[i] = fit(h, widths[i])
		rule[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(out, "| "+strings.Join(header, " | ")+" |")
	fmt.Fprintln(out, "|-"+strings.Join(rule, "-|-")+"-|")

	cells := make([]string, n)
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = formatCell(v, widths[i])
		}
		fmt.Fprintln(out, "| "+strings.Join(cells, " | ")+" |")
	}
	return out.Flush()
}

func columnWidths(t *models.Table, width int) []int {
	n := len(t.Header)
	widths := make([]int, n)
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i, v := range row {
			w := utf8.RuneCountInString(models.FormatValue(v))
			if f, ok := v.(float64); ok && w > floatWidth {
				w = floatWidth
				// never cut the integer digits of a number
				if iw := integerWidth(f); iw > w {
					w = iw
				}
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 3*n + 1
	for _, w := range widths {
		total += w
	}
	if total <= width {
		return widths
	}

	th := (width - 3*n - 1) / n
	if th < minColumnWidth {
		th = minColumnWidth
	}
	for i, w := range widths {
		if w > th {
			widths[i] = th
		}
	}
	return widths
}

func formatCell(v interface{}, w int) string {
	f, ok := v.(float64)
	if !ok {
		return fit(models.FormatValue(v), w)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fit(models.FormatFloat(f), w)
	}

	// keep at most 10 significant digits
	nInt := 1
	if f != 0 {
		nInt = int(math.Ceil(math.Log10(math.Abs(f) + 1)))
	}
	f = round(f, 10-nInt)

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return clip(fmt.Sprintf("%*d", w, int64(f)), w)
	}
	s := models.FormatFloat(f)
	if utf8.RuneCountInString(s) > w {
		prec := w - nInt - 1
		if prec < 0 {
			prec = 0
		}
		s = strconv.FormatFloat(f, 'f', prec, 64)
	}
	return fit(s, w)
}

// integerWidth is the length of f's integer part, sign included.
func integerWidth(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return len(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
}

func round(f float64, decimals int) float64 {
	if decimals >= 0 {
		r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', decimals, 64), 64)
		if err != nil {
			return f
		}
		return r
	}
	p := math.Pow(10, float64(-decimals))
	return math.Round(f/p) * p
}

// fit left-justifies s in exactly w characters.
func fit(s string, w int) string {
	s = clip(s, w)
	if pad := w - utf8.RuneCountInString(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func clip(s string, w int) string {
	if utf8.RuneCountInString(s) <= w {
		return s
	}
	return string([]rune(s)[:w])
}
