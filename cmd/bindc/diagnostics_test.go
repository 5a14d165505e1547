package main

import (
	"bytes"
	"testing"

	"github.com/grindlemire/go-bindc/internal/bindgen"
)

func TestFormatDiagnostic(t *testing.T) {
	d := &bindgen.Diagnostic{
		Pos:      bindgen.Position{File: "app.ts", Line: 2, Column: 5},
		Severity: bindgen.SeverityWarning,
		Message:  "binding dropped",
		Hint:     "pass three arguments",
	}

	if got, want := formatDiagnostic(d, false), "app.ts:2:5: warning: binding dropped (pass three arguments)"; got != want {
		t.Errorf("plain = %q, want %q", got, want)
	}
	if got, want := formatDiagnostic(d, true), "app.ts:2:5: \x1b[33mwarning\x1b[0m: binding dropped (pass three arguments)"; got != want {
		t.Errorf("color = %q, want %q", got, want)
	}
}

func TestPrintDiagnostics_Level(t *testing.T) {
	diags := []*bindgen.Diagnostic{
		{Pos: bindgen.Position{Line: 1, Column: 1}, Severity: bindgen.SeverityInfo, Message: "recovered"},
		{Pos: bindgen.Position{Line: 2, Column: 1}, Severity: bindgen.SeverityWarning, Message: "dropped"},
	}
	var buf bytes.Buffer
	printDiagnostics(&buf, diags, bindgen.SeverityWarning, false)
	if got, want := buf.String(), "2:1: warning: dropped\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
