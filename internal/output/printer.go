package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// IsColorEnabled reports whether ANSI colors should be written to w: w must
// be a terminal and NO_COLOR must be unset.
func IsColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return writerIsTTY(w)
}

// Printer writes diagnostics (never the package list itself) to one writer,
// usually stderr.
type Printer struct {
	w            io.Writer
	colorEnabled bool
	verbose      bool

	info    *color.Color
	warn    *color.Color
	success *color.Color
	debug   *color.Color
}

// NewPrinter constructs a Printer with color automatically enabled for TTY
// writers.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:       w,
		info:    color.New(color.FgBlue, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		debug:   color.New(color.FgHiBlack),
	}
	p.SetColor(IsColorEnabled(w))
	return p
}

// SetColor forces color on or off.
func (p *Printer) SetColor(enabled bool) {
	p.colorEnabled = enabled
	for _, c := range []*color.Color{p.info, p.warn, p.success, p.debug} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// ColorEnabled reports whether the printer emits ANSI colors.
func (p *Printer) ColorEnabled() bool {
	return p.colorEnabled
}

// SetVerbose toggles Debugf output.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

// Verbose reports whether Debugf output is enabled.
func (p *Printer) Verbose() bool {
	return p.verbose
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) Infof(format string, args ...any) {
	p.info.Fprint(p.w, "==> ")
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.warn.Fprint(p.w, "Warning: ")
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.success.Fprintf(p.w, "✓ "+format+"\n", args...)
}

// Debugf prints only in verbose mode.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.verbose {
		return
	}
	p.debug.Fprintf(p.w, format+"\n", args...)
}
