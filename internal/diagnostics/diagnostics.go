// Package diagnostics renders loader and resolver outcomes for the
// command line tool, with ANSI color when the output is a terminal.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[39m"
)

// Reporter writes diagnostics to one sink.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter creates a reporter for w, enabling color only when w is a
// real terminal.
func NewReporter(w io.Writer) *Reporter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: w, color: color}
}

func (r *Reporter) wrap(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// Errorf reports a failure.
func (r *Reporter) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s %s\n", r.wrap(ansiRed, "error:"), fmt.Sprintf(format, args...))
}

// Warnf reports something suspicious but non-fatal.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s %s\n", r.wrap(ansiYellow, "warning:"), fmt.Sprintf(format, args...))
}

// Okf reports a successful outcome.
func (r *Reporter) Okf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s %s\n", r.wrap(ansiGreen, "ok:"), fmt.Sprintf(format, args...))
}

// Infof reports neutral progress.
func (r *Reporter) Infof(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s\n", fmt.Sprintf(format, args...))
}
