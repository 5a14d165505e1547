package bindc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grindlemire/go-bindc/internal/bindgen"
	"github.com/grindlemire/go-bindc/internal/ctfe"
	"github.com/grindlemire/go-bindc/internal/edit"
	"github.com/grindlemire/go-bindc/internal/log"
)

// Result is the outcome of compiling one source file.
type Result struct {
	// Code is the rewritten source, or the original source when Changed
	// is false.
	Code string

	// Changed reports whether Code differs from the source.
	Changed bool

	Diagnostics []*bindgen.Diagnostic

	// Templates counts the templates that were compiled.
	Templates int

	// Components and Routes count compile-time resolved component calls
	// and route selectors.
	Components int
	Routes     int
}

// Warnings returns the number of diagnostics of warning severity or worse.
func (r *Result) Warnings() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity >= bindgen.SeverityWarning {
			n++
		}
	}
	return n
}

// Compile rewrites every html template in source into its compiled form
// and imports the binding primitives the result needs. Option errors are
// returned with a nil Result. An internal failure is reported as an error
// diagnostic and returned as the error, with the source passed through
// unchanged.
func Compile(filename, source string, opts ...Option) (res *Result, err error) {
	cfg := newConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("bindc: %w", err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			d := &bindgen.Diagnostic{
				Pos:      bindgen.PositionAt(filename, source, 0),
				Severity: bindgen.SeverityError,
				Message:  fmt.Sprintf("internal compiler error: %v", r),
			}
			log.Compile("%s: recovered: %v", filename, r)
			res = &Result{Code: source, Diagnostics: []*bindgen.Diagnostic{d}}
			err = d
		}
	}()

	return compile(filename, source, cfg), nil
}

func compile(filename, source string, cfg *config) *Result {
	res := &Result{}
	var diags bindgen.DiagnosticList

	text := source
	if cfg.modules != nil {
		ev := ctfe.Evaluate(source, ctfe.Options{Filename: filename, FS: cfg.modules, Cache: cfg.cache})
		diags.Merge(ev.Diagnostics)
		text = edit.Apply(source, ev.Edits)
		res.Components, res.Routes = ev.Components, ev.Routes
	}

	statics := bindgen.StaticValues(text, cfg.signalFactories)
	gen := bindgen.NewGenerator(bindgen.Options{
		Filename:     filename,
		SourcePrefix: cfg.sourcePrefix,
		AnchorPrefix: cfg.anchorPrefix,
		StaticValues: statics,
	})

	var edits []edit.Edit
	used := make(map[string]bool)
	var prims []string
	for _, tl := range bindgen.FindTemplates(text, cfg.templateTag) {
		out := gen.Generate(tl.Text(text))
		for _, d := range out.Diagnostics.Items() {
			d.Pos = bindgen.PositionAt(filename, text, tl.Content.Start+d.Pos.Offset)
			diags.Add(d)
		}
		if !out.Changed() {
			continue
		}
		res.Templates++
		edits = append(edits, edit.Replace(tl.Start, tl.End, out.Render(lineIndent(text, tl.Start))))
		for _, p := range out.Primitives {
			if !used[p] {
				used[p] = true
				prims = append(prims, p)
			}
		}
	}
	sort.Strings(prims)
	edits = append(edits, bindgen.RewireImports(text, cfg.runtimeModule, prims)...)

	res.Code = edit.Apply(text, edits)
	res.Changed = res.Code != source
	res.Diagnostics = diags.Items()
	if res.Changed {
		log.Compile("%s: %d template(s), primitives %s", filename, res.Templates, strings.Join(prims, ", "))
	}
	return res
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(text string, offset int) string {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := start
	for end < offset && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[start:end]
}
