// +build !windows

package render

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// TerminalWidth reports the column count of the terminal behind f. A
// positive override wins; anything that is not a terminal gets 80 columns.
func TerminalWidth(f *os.File, override int) int {
	if override > 0 {
		return override
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) {
		return defaultWidth
	}
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultWidth
	}
	return int(ws.Col)
}
