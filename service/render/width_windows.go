package render

import (
	"os"
)

// TerminalWidth returns the override when positive, else 80 columns.
func TerminalWidth(f *os.File, override int) int {
	if override > 0 {
		return override
	}
	return defaultWidth
}
