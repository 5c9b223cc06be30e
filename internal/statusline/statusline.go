// Package statusline maintains a single evolving console status line:
// transient messages overwrite each other in place, permanent messages
// scroll the line into history.
package statusline

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes status messages to w. It remembers the length of the last
// transient message so the next write can blank it out fully.
type Printer struct {
	w       io.Writer
	lastLen int
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Updatef replaces the current status line in place.
func (p *Printer) Updatef(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "\r%s\r%s", strings.Repeat(" ", p.lastLen), msg)
	p.lastLen = len(msg)
}

// Printlnf clears the status line and appends msg as a permanent line.
func (p *Printer) Printlnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "\r%s\r%s\n", strings.Repeat(" ", p.lastLen), msg)
	p.lastLen = 0
}
