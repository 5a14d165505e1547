package ctfe

import (
	"fmt"
	"io/fs"

	"github.com/grindlemire/go-bindc/internal/bindgen"
	"github.com/grindlemire/go-bindc/internal/edit"
	"github.com/grindlemire/go-bindc/internal/log"
)

// Options configures an evaluation.
type Options struct {
	// Filename is the path of the evaluated source inside FS. Relative
	// imports are resolved against its directory.
	Filename string

	// FS holds the module tree. Without one nothing is resolved.
	FS fs.FS

	// Cache holds parsed modules across evaluations. A private cache is
	// used when nil.
	Cache *Cache

	// Registry collects the descriptors of every resolved component. A
	// fresh registry is used when nil.
	Registry *Registry
}

// Result is the outcome of evaluating one source file.
type Result struct {
	Edits       []edit.Edit
	Components  int // inlined component calls
	Routes      int // routes that gained a selector
	Diagnostics *bindgen.DiagnosticList
}

// Changed reports whether evaluation produced any edits.
func (r *Result) Changed() bool {
	return len(r.Edits) > 0
}

type evaluator struct {
	opts     Options
	src      string
	code     string // src with comments blanked
	imports  map[string]Import
	registry *Registry
	res      *Result
}

// Evaluate resolves the component calls and lazy routes of src and returns
// the edits that inline them. src itself is not modified.
func Evaluate(src string, opts Options) *Result {
	res := &Result{Diagnostics: &bindgen.DiagnosticList{}}
	if opts.FS == nil {
		return res
	}
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}

	e := &evaluator{
		opts:     opts,
		src:      src,
		code:     blankComments(src),
		imports:  make(map[string]Import),
		registry: opts.Registry,
		res:      res,
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	for _, imp := range ParseImports(src) {
		if isComponentName(imp.Local) && len(Candidates(opts.Filename, imp.Spec)) > 0 {
			e.imports[imp.Local] = imp
		}
	}

	e.scan(0, len(e.code))
	if res.Components > 0 || res.Routes > 0 {
		log.CTFE("%s: inlined %d component call(s), %d route selector(s)", opts.Filename, res.Components, res.Routes)
	}
	return res
}

// EvaluateText evaluates src and applies the resulting edits.
func EvaluateText(src string, opts Options) (string, *Result) {
	res := Evaluate(src, opts)
	return edit.Apply(src, res.Edits), res
}

func (e *evaluator) warnf(offset int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pos := bindgen.PositionAt(e.opts.Filename, e.src, offset)
	e.res.Diagnostics.AddWarningf(pos, "%s", msg)
	log.CTFE("%s: skipped: %s", pos, msg)
}

func (e *evaluator) infof(offset int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pos := bindgen.PositionAt(e.opts.Filename, e.src, offset)
	e.res.Diagnostics.AddInfof(pos, "%s", msg)
	log.CTFE("%s: %s", pos, msg)
}

// scan walks code in [start, end), descending into template literals and
// their embedded expressions.
func (e *evaluator) scan(start, end int) {
	code := e.code
	i := start
	for i < end {
		c := code[i]
		switch {
		case c == '"' || c == '\'':
			i = bindgen.SkipQuoted(code, i)
			continue
		case c == '`':
			i = e.template(i)
			continue
		case c == '{':
			e.route(i)
		case bindgen.IsIdentChar(c) && (i == 0 || !bindgen.IsIdentChar(code[i-1])):
			j := i
			for j < end && bindgen.IsIdentChar(code[j]) {
				j++
			}
			if next := e.codeCall(i, j); next > 0 {
				i = next
				continue
			}
			i = j
			continue
		}
		i++
	}
}

// template walks the template literal at pos and returns the offset just
// past it.
func (e *evaluator) template(pos int) int {
	code := e.code
	i := pos + 1
	for i < len(code) {
		switch code[i] {
		case '\\':
			i += 2
			continue
		case '`':
			return i + 1
		case '$':
			if i+1 < len(code) && code[i+1] == '{' {
				end := bindgen.ScanExpr(code, i)
				if end < 0 {
					return len(code)
				}
				if !e.markupCall(i, end) {
					e.scan(i+2, end-1)
				}
				i = end
				continue
			}
		}
		i++
	}
	return len(code)
}

// markupCall inlines an embedded expression that is exactly one component
// call. It reports whether the expression had that shape, whether or not
// it could be inlined.
func (e *evaluator) markupCall(start, end int) bool {
	inner := bindgen.TrimSpan(e.code, bindgen.Span{Start: start + 2, End: end - 1})
	name, open, ok := e.callee(inner.Start, inner.End)
	if !ok {
		return false
	}
	args, callEnd, ok := bindgen.SplitArgs(e.code, open)
	if !ok || callEnd != inner.End {
		return false
	}
	if markup, ok := e.inline(inner.Start, name, args); ok {
		e.res.Edits = append(e.res.Edits, edit.Replace(start, end, markup))
		e.res.Components++
	}
	return true
}

// codeCall inlines a component call outside markup as a template string.
// It returns the offset past the call when it was inlined, or 0.
func (e *evaluator) codeCall(start, identEnd int) int {
	if !e.callable(start) {
		return 0
	}
	name, open, ok := e.callee(start, len(e.code))
	if !ok || start+len(name) != identEnd {
		return 0
	}
	args, callEnd, ok := bindgen.SplitArgs(e.code, open)
	if !ok {
		return 0
	}
	markup, ok := e.inline(start, name, args)
	if !ok {
		return 0
	}
	e.res.Edits = append(e.res.Edits, edit.Replace(start, callEnd, "`"+markup+"`"))
	e.res.Components++
	return callEnd
}

// callee matches an imported component name at start followed by '('. It
// returns the name and the offset of the parenthesis.
func (e *evaluator) callee(start, end int) (string, int, bool) {
	j := start
	for j < end && bindgen.IsIdentChar(e.code[j]) {
		j++
	}
	name := e.code[start:j]
	if _, ok := e.imports[name]; !ok {
		return "", 0, false
	}
	for j < end && isSpace(e.code[j]) {
		j++
	}
	if j >= end || e.code[j] != '(' {
		return "", 0, false
	}
	return name, j, true
}

// callable reports whether an identifier at start is in call position
// rather than a member access or a declaration.
func (e *evaluator) callable(start int) bool {
	i := start - 1
	for i >= 0 && isSpace(e.code[i]) {
		i--
	}
	if i >= 0 && e.code[i] == '.' {
		return false
	}
	end := i + 1
	for i >= 0 && bindgen.IsIdentChar(e.code[i]) {
		i--
	}
	switch e.code[i+1 : end] {
	case "new", "function", "class":
		return false
	}
	return true
}

// inline resolves the component bound to name and renders the element for
// a call with args. at locates diagnostics.
func (e *evaluator) inline(at int, name string, args []bindgen.Span) (string, bool) {
	imp := e.imports[name]
	tag, ok := e.resolveTag(at, imp.Spec, imp.Imported)
	if !ok {
		return "", false
	}

	var props []prop
	switch len(args) {
	case 0:
	case 1:
		props, ok = e.props(args[0])
		if !ok {
			e.warnf(at, "props of %s(...) are not a static object literal", name)
			return "", false
		}
	default:
		e.warnf(at, "%s(...) takes a single props object, got %d arguments", name, len(args))
		return "", false
	}
	return renderElement(e.src, tag, props), true
}

// resolveTag finds the tag the export of the module at spec registers and
// records the module's descriptors.
func (e *evaluator) resolveTag(at int, spec, export string) (string, bool) {
	m, err := e.opts.Cache.Resolve(e.opts.FS, e.opts.Filename, spec)
	if err != nil {
		e.warnf(at, "cannot resolve %q: %v", spec, err)
		return "", false
	}
	tag, ok := m.Tag(export)
	if !ok {
		e.warnf(at, "%s registers no tag for %s", m.Path, export)
		return "", false
	}
	for _, d := range m.Definitions {
		if prev, ok := e.registry.Register(Descriptor{Tag: d.Tag, Module: m.Path, Export: d.Export}); !ok {
			e.warnf(at, "tag %q is registered by both %s and %s", d.Tag, prev.Module, m.Path)
		}
	}
	return tag, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
