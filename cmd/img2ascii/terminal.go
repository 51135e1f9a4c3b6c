package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/wbrown/img2ascii"
)

// isTerminal reports whether w is an *os.File attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorMode resolves the -color flag. In auto mode color is used when
// stdout is a terminal and NO_COLOR is unset or empty.
func colorMode(mode string, stdout io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return isTerminal(stdout) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid color mode %q: options are always, never, or auto", mode)
}

// warnIfTooWide logs a warning when the rendered rows will wrap in the
// terminal on stdout.
func warnIfTooWide(log *slog.Logger, stdout io.Writer, width, scale int) {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	termWidth, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		log.Debug("could not query terminal size", "err", err)
		return
	}
	cols := (width + scale - 1) / scale
	if cols > termWidth {
		log.Warn("output is wider than the terminal",
			"columns", cols, "terminal", termWidth,
			"hint", fmt.Sprintf("try a stride of %d", img2ascii.MinStrideForWidth(width, termWidth)))
	}
}
