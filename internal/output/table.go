// Package output provides terminal output utilities for kernelprune.
//
// This package includes:
//   - A Printer for colored warnings, notices and verbose diagnostics
//   - A grouped table of installed kernel packages
//   - A countdown spinner shown while waiting for the dpkg lock
//
// Colors are only emitted to terminals and are suppressed by NO_COLOR.
package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/kernelprune/internal/kernel"
)

const (
	statusBooted = "booted"
	statusUnused = "unused"
)

// RenderKernelTable renders every classified kernel package, one section per
// family in first-seen order, with its kernel version, package version and
// whether it is the booted kernel.
func RenderKernelTable(g kernel.Groups, colorEnabled bool) string {
	if g.Len() == 0 {
		return "No kernel packages found.\n"
	}

	headers := [4]string{"Package", "Kernel", "Version", "Status"}
	widths := [4]int{}
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, rec := range g.All() {
		widths[0] = max(widths[0], runewidth.StringWidth("  "+rec.Name))
		widths[1] = max(widths[1], runewidth.StringWidth(rec.KernelVersion))
		widths[2] = max(widths[2], runewidth.StringWidth(rec.VersionRevision))
	}

	booted := color.New(color.FgGreen, color.Bold)
	unused := color.New(color.FgYellow)
	if colorEnabled {
		booted.EnableColor()
		unused.EnableColor()
	} else {
		booted.DisableColor()
		unused.DisableColor()
	}

	var sb strings.Builder
	total := widths[0] + widths[1] + widths[2] + widths[3] + 6

	sb.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		runewidth.FillRight(headers[0], widths[0]),
		runewidth.FillRight(headers[1], widths[1]),
		runewidth.FillRight(headers[2], widths[2]),
		headers[3]))
	sb.WriteString(strings.Repeat("─", total))
	sb.WriteString("\n")

	for _, prefix := range g.Prefixes() {
		sb.WriteString(strings.TrimSuffix(prefix, "-"))
		sb.WriteString("\n")

		for _, rec := range g.Records(prefix) {
			status := unused.Sprint(statusUnused)
			if rec.Booted {
				status = booted.Sprint(statusBooted)
			}
			sb.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				runewidth.FillRight("  "+rec.Name, widths[0]),
				runewidth.FillRight(rec.KernelVersion, widths[1]),
				runewidth.FillRight(rec.VersionRevision, widths[2]),
				status))
		}
	}

	return sb.String()
}
