package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/grindlemire/go-bindc/internal/bindgen"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

// useColor reports whether f is a terminal and NO_COLOR is unset.
func useColor(f *os.File) bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd()))
}

// printDiagnostics writes every diagnostic at or above level to w.
func printDiagnostics(w io.Writer, diags []*bindgen.Diagnostic, level bindgen.Severity, color bool) {
	for _, d := range diags {
		if d.Severity >= level {
			fmt.Fprintln(w, formatDiagnostic(d, color))
		}
	}
}

// formatDiagnostic renders d as "file:line:col: severity: message (hint)".
func formatDiagnostic(d *bindgen.Diagnostic, color bool) string {
	if !color {
		return d.Error()
	}
	c := colorCyan
	switch d.Severity {
	case bindgen.SeverityError:
		c = colorRed
	case bindgen.SeverityWarning:
		c = colorYellow
	}
	s := fmt.Sprintf("%s: %s%s%s: %s", d.Pos, c, d.Severity, colorReset, d.Message)
	if d.Hint != "" {
		s += " (" + d.Hint + ")"
	}
	return s
}
