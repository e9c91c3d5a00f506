package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	cursorUp  = "\033[F"
	eraseLine = "\r\033[K"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
