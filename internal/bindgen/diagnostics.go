package bindgen

import (
	"fmt"
	"strings"
)

// Position is a location in a source file. Line and Column are 1-based,
// Offset is the 0-based byte offset.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// PositionAt converts a byte offset in src into a Position.
func PositionAt(file, src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	line := 1 + strings.Count(src[:offset], "\n")
	col := offset + 1
	if nl := strings.LastIndexByte(src[:offset], '\n'); nl >= 0 {
		col = offset - nl
	}
	return Position{File: file, Line: line, Column: col, Offset: offset}
}

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityInfo marks a recovered markup anomaly.
	SeverityInfo Severity = iota
	// SeverityWarning marks a construct that was skipped.
	SeverityWarning
	// SeverityError marks an internal failure; the file is left untransformed.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a message about the compiled source with a location and
// optional hint.
type Diagnostic struct {
	Pos      Position
	Severity Severity
	Message  string
	Hint     string // optional suggestion for fixing the source
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(d.Pos.String())
	sb.WriteString(": ")
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(d.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// DiagnosticList collects diagnostics during compilation.
type DiagnosticList struct {
	items []*Diagnostic
}

// Add appends a diagnostic to the list.
func (dl *DiagnosticList) Add(d *Diagnostic) {
	dl.items = append(dl.items, d)
}

// AddInfof records a recovered anomaly.
func (dl *DiagnosticList) AddInfof(pos Position, format string, args ...any) {
	dl.items = append(dl.items, &Diagnostic{Pos: pos, Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)})
}

// AddWarningf records a skipped construct.
func (dl *DiagnosticList) AddWarningf(pos Position, format string, args ...any) {
	dl.items = append(dl.items, &Diagnostic{Pos: pos, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// AddWarningWithHint records a skipped construct with a fix suggestion.
func (dl *DiagnosticList) AddWarningWithHint(pos Position, message, hint string) {
	dl.items = append(dl.items, &Diagnostic{Pos: pos, Severity: SeverityWarning, Message: message, Hint: hint})
}

// Merge appends all diagnostics of other.
func (dl *DiagnosticList) Merge(other *DiagnosticList) {
	if other == nil {
		return
	}
	dl.items = append(dl.items, other.items...)
}

// Len returns the number of diagnostics.
func (dl *DiagnosticList) Len() int {
	return len(dl.items)
}

// HasErrors returns true if any diagnostic has error severity.
func (dl *DiagnosticList) HasErrors() bool {
	for _, d := range dl.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics at or above the given severity.
func (dl *DiagnosticList) Count(level Severity) int {
	n := 0
	for _, d := range dl.items {
		if d.Severity >= level {
			n++
		}
	}
	return n
}

// Items returns a copy of the diagnostic slice.
func (dl *DiagnosticList) Items() []*Diagnostic {
	result := make([]*Diagnostic, len(dl.items))
	copy(result, dl.items)
	return result
}

// Error implements the error interface, returning all diagnostics joined by newlines.
func (dl *DiagnosticList) Error() string {
	if len(dl.items) == 0 {
		return ""
	}
	if len(dl.items) == 1 {
		return dl.items[0].Error()
	}

	var sb strings.Builder
	for i, d := range dl.items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// Err returns nil if there are no error-severity diagnostics, otherwise the
// list as an error.
func (dl *DiagnosticList) Err() error {
	if !dl.HasErrors() {
		return nil
	}
	return dl
}
