package walker

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/jchain/ff/internal/options"
)

// Emitter writes matched paths to an output stream, one per line, with a
// single buffered write per line so concurrent workers can never interleave
// a line's bytes (spec.md §5: "each emitted line must be written with a
// single atomic write").
type Emitter struct {
	mu       sync.Mutex
	w        *bufio.Writer
	colorize bool
}

// NewEmitter creates an Emitter writing to w. When colorize is true, each
// line is rendered as <colorized dir>/<colorized basename><reset>, matching
// the ANSI scheme spec.md §6 requires; otherwise the plain path is written
// followed by a newline.
func NewEmitter(w io.Writer, colorize bool) *Emitter {
	return &Emitter{w: bufio.NewWriter(w), colorize: colorize}
}

var (
	dirColor  = color.New(color.FgBlue, color.Bold)
	fileColor = color.New(color.FgGreen)
)

// Emit writes one matched path line: parent is the directory the entry was
// found in, basename is the entry's own name, and typ selects the per-type
// color used for the basename when colorization is enabled.
func (e *Emitter) Emit(parent, basename string, typ options.EntryType) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.colorize {
		dirColor.Fprint(e.w, parent+"/")
		colorForType(typ).Fprint(e.w, basename)
	} else {
		fmt.Fprint(e.w, parent+"/"+basename)
	}
	e.w.WriteByte('\n')
	e.w.Flush()
}

// colorForType picks the basename color per entry kind; directories get the
// same color as the leading path component, everything else defaults to
// fileColor — the original dircolors.h scheme distinguishes mainly
// directories from non-directories.
func colorForType(typ options.EntryType) *color.Color {
	if typ == options.Directory {
		return dirColor
	}
	return fileColor
}
