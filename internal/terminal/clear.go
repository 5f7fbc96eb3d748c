// Package terminal provides prompt helpers for the CLI: reading plain and
// hidden input, and erasing prompts once they have been answered.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Width returns the width of the terminal behind stdout, or 80 when stdout is
// not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// linesUsed reports how many rows textLength characters occupy at width,
// plus the row the cursor lands on after Enter.
func linesUsed(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	n := (textLength + width - 1) / width
	if n < 1 {
		n = 1
	}
	return n + 1
}

// ClearPreviousLines erases an answered prompt of textLength characters
// (prompt plus input) from w.
func ClearPreviousLines(w io.Writer, textLength int) {
	lines := linesUsed(textLength, Width())
	for i := 0; i < lines; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < lines-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
