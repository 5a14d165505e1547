package bindgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grindlemire/go-bindc/internal/edit"
)

// DefaultAnchorPrefix prefixes generated anchor ids: r0, r1, ...
const DefaultAnchorPrefix = "r"

// anchorAttr is the attribute that carries an element's anchor.
const anchorAttr = "id"

// Options configures a Generator.
type Options struct {
	// Filename is used in diagnostics.
	Filename string

	// SourcePrefix is prepended to a reactive source name wherever a call
	// references the source itself, for example "this." to produce
	// this.count.
	SourcePrefix string

	// AnchorPrefix prefixes generated anchor ids. Defaults to "r".
	AnchorPrefix string

	// StaticValues maps source names to their statically known initial
	// values (see StaticValues).
	StaticValues map[string]string
}

// Result is the output of generating one template.
type Result struct {
	// Template is the rewritten static markup. It equals the input when
	// Bindings is zero.
	Template string

	// Calls are the binding calls of the top-level scope, without the
	// trailing semicolon. Calls may span several lines.
	Calls []string

	// Primitives are the distinct runtime primitives the calls use, sorted.
	Primitives []string

	// Bindings counts every binding compiled, nested ones included.
	Bindings int

	Diagnostics DiagnosticList
}

// Changed reports whether the template had anything to compile.
func (r *Result) Changed() bool {
	return r.Bindings > 0
}

// Generator compiles classified templates into static markup plus binding
// calls. A Generator is not safe for concurrent use; each top-level
// template restarts the anchor counter.
type Generator struct {
	opts Options

	root       string // top-level template text, for diagnostic positions
	counter    int
	primitives map[string]bool
	bindings   int
	diags      DiagnosticList
}

// NewGenerator creates a Generator.
func NewGenerator(opts Options) *Generator {
	if opts.AnchorPrefix == "" {
		opts.AnchorPrefix = DefaultAnchorPrefix
	}
	return &Generator{opts: opts}
}

// Generate compiles one top-level template text. A template without
// bindings is returned unchanged.
func (g *Generator) Generate(text string) *Result {
	g.root = text
	g.counter = 0
	g.primitives = make(map[string]bool)
	g.bindings = 0
	g.diags = DiagnosticList{}

	c := g.compile(text, 0)

	res := &Result{Template: text, Diagnostics: g.diags}
	if g.bindings == 0 {
		return res
	}
	res.Template = c.template
	res.Calls = c.calls
	res.Bindings = g.bindings
	for name := range g.primitives {
		res.Primitives = append(res.Primitives, name)
	}
	sort.Strings(res.Primitives)
	return res
}

// GenerateText is a convenience wrapper that generates text with opts.
func GenerateText(text string, opts Options) *Result {
	return NewGenerator(opts).Generate(text)
}

// compiled is a compiled template or sub-template.
type compiled struct {
	template string
	calls    []string
}

// unit holds the state of compiling one template text.
type unit struct {
	text string
	base int // offset of text within the top-level template

	anchors map[*Element]string // element anchors
	inject  []*Element          // elements whose anchor must be injected
	own     map[*Binding]string // anchors of wrapped text and placeholders
	subs    map[*Binding][]compiled
	edits   []edit.Edit

	done map[*Attribute]bool // attributes rewritten as a whole
}

// compile parses, classifies and rewrites text. Sub-templates are compiled
// recursively as they are reached, so anchors follow first appearance in
// the flattened template.
func (g *Generator) compile(text string, base int) compiled {
	t := ClassifyText(g.opts.Filename, text)
	g.remap(&t.Diagnostics, base)

	u := &unit{
		text:    text,
		base:    base,
		anchors: make(map[*Element]string),
		own:     make(map[*Binding]string),
		subs:    make(map[*Binding][]compiled),
		done:    make(map[*Attribute]bool),
	}
	bindings := g.dropBoundAnchors(u, t.Bindings)
	g.bindings += len(bindings)
	if len(bindings) == 0 {
		return compiled{template: text}
	}

	for _, b := range bindings {
		g.assign(u, b)
	}
	for _, b := range bindings {
		g.rewrite(u, b)
	}
	for _, e := range u.inject {
		u.edits = append(u.edits, edit.Insert(e.TagNameEnd, fmt.Sprintf(` %s="%s"`, anchorAttr, u.anchors[e])))
	}

	return compiled{
		template: edit.Apply(text, u.edits),
		calls:    g.scopeCalls(u, bindings),
	}
}

// dropBoundAnchors removes attribute bindings on the anchor attribute. The
// attribute is stripped from the markup so the element carries exactly one
// anchor.
func (g *Generator) dropBoundAnchors(u *unit, bs []*Binding) []*Binding {
	var out []*Binding
	for _, b := range bs {
		if b.Kind == KindAttribute && strings.EqualFold(b.Attr.Name, anchorAttr) {
			g.warnf(u, b.Attr.Start, "<%s> has a bound %s; binding dropped", b.Element.TagName, anchorAttr)
			g.stripAttr(u, b.Element, b.Attr)
			continue
		}
		out = append(out, b)
	}
	return out
}

// stripAttr removes a from the markup once.
func (g *Generator) stripAttr(u *unit, e *Element, a *Attribute) {
	if u.done[a] {
		return
	}
	u.done[a] = true
	u.edits = append(u.edits, edit.Remove(attrRemovalStart(u.text, e, a.Start), a.End))
}

// remap moves diagnostics of a sub-template to positions in the top-level
// template and collects them.
func (g *Generator) remap(dl *DiagnosticList, base int) {
	for _, d := range dl.Items() {
		d.Pos = PositionAt(g.opts.Filename, g.root, base+d.Pos.Offset)
		g.diags.Add(d)
	}
}

func (g *Generator) nextAnchor() string {
	id := fmt.Sprintf("%s%d", g.opts.AnchorPrefix, g.counter)
	g.counter++
	return id
}

// elementAnchor returns the anchor of e, assigning one on first use. An
// element with a static id keeps it.
func (g *Generator) elementAnchor(u *unit, e *Element) string {
	if id, ok := u.anchors[e]; ok {
		return id
	}
	if a := e.Attr(anchorAttr); a != nil {
		if a.HasValue && a.Value != "" && !strings.Contains(a.Value, "${") {
			u.anchors[e] = a.Value
			return a.Value
		}
		if !u.done[a] {
			g.warnf(u, a.Start, "<%s> has no static %s; replaced by a generated anchor", e.TagName, anchorAttr)
			g.stripAttr(u, e, a)
		}
	}
	id := g.nextAnchor()
	u.anchors[e] = id
	u.inject = append(u.inject, e)
	return id
}

func (g *Generator) position(u *unit, offset int) Position {
	return PositionAt(g.opts.Filename, g.root, u.base+offset)
}

// warnf records a warning at an offset of u's text.
func (g *Generator) warnf(u *unit, offset int, format string, args ...any) {
	g.diags.AddWarningf(g.position(u, offset), format, args...)
}

// assign picks the anchor of b and compiles its sub-templates.
func (g *Generator) assign(u *unit, b *Binding) {
	switch b.Kind {
	case KindText:
		if !b.Element.IsRoot() && b.Element.SoleContent(u.text, b.Start, b.End) {
			g.elementAnchor(u, b.Element)
		} else {
			u.own[b] = g.nextAnchor()
		}

	case KindAttribute, KindStyle, KindEvent, KindConditionalElement:
		g.elementAnchor(u, b.Element)

	case KindConditionalBranch:
		u.own[b] = g.nextAnchor()
		br := b.Branch
		u.subs[b] = []compiled{
			g.compile(br.Then.Text(u.text), u.base+br.Then.Start),
			g.compile(br.Else.Text(u.text), u.base+br.Else.Start),
		}

	case KindList:
		u.own[b] = g.nextAnchor()
		l := b.List
		subs := []compiled{g.compile(l.Body.Text(u.text), u.base+l.Body.Start)}
		if l.Empty != nil {
			subs = append(subs, g.compile(l.Empty.Text(u.text), u.base+l.Empty.Start))
		}
		u.subs[b] = subs
	}
}

// rewrite adds the template edits of b.
func (g *Generator) rewrite(u *unit, b *Binding) {
	switch b.Kind {
	case KindText:
		value := g.staticValue(b)
		if id, ok := u.own[b]; ok {
			value = fmt.Sprintf(`<span %s="%s">%s</span>`, anchorAttr, id, value)
		}
		u.edits = append(u.edits, edit.Replace(b.Start, b.End, value))

	case KindAttribute, KindStyle:
		a := b.Attr
		if a.Quote != 0 || opensQuote(u.text, a) {
			u.edits = append(u.edits, g.valueEdits(u, b.Start, b.End)...)
			break
		}
		// Unquoted values are rewritten whole and quoted.
		if u.done[a] {
			break
		}
		u.done[a] = true
		value := edit.ApplyRange(u.text, a.ValueStart, a.ValueEnd, g.valueEdits(u, a.ValueStart, a.ValueEnd))
		u.edits = append(u.edits, edit.Replace(a.ValueStart, a.ValueEnd, `"`+value+`"`))

	case KindEvent, KindConditionalElement:
		u.edits = append(u.edits, edit.Remove(attrRemovalStart(u.text, b.Element, b.Start), b.End))

	case KindConditionalBranch, KindList:
		placeholder := fmt.Sprintf(`<template %s="%s"></template>`, anchorAttr, u.own[b])
		u.edits = append(u.edits, edit.Replace(b.Start, b.End, placeholder))
	}
}

// valueEdits replaces every reactive expression in [start, end) with its
// static initial value, or with nothing when the value is unknown.
func (g *Generator) valueEdits(u *unit, start, end int) []edit.Edit {
	var edits []edit.Edit
	for _, s := range exprSpans(u.text, start, end) {
		inner := innerSpan(u.text, s).Text(u.text)
		if len(FindReads(inner)) == 0 {
			continue
		}
		value := ""
		if name, ok := SingleRead(inner); ok {
			value = g.lookupStatic(name)
		}
		edits = append(edits, edit.Replace(s.Start, s.End, value))
	}
	return edits
}

// opensQuote reports whether a's value follows a quote that was never
// closed.
func opensQuote(src string, a *Attribute) bool {
	if a.ValueStart == 0 {
		return false
	}
	c := src[a.ValueStart-1]
	return c == '"' || c == '\''
}

// attrRemovalStart extends an attribute removal back over the whitespace
// that separates it from the previous token.
func attrRemovalStart(src string, e *Element, start int) int {
	for start > e.TagNameEnd && isSpace(src[start-1]) {
		start--
	}
	return start
}

// staticValue returns the escaped initial value for a simple binding, or ""
// when the value is only known at runtime.
func (g *Generator) staticValue(b *Binding) string {
	if !b.Simple || len(b.Signals) != 1 {
		return ""
	}
	return g.lookupStatic(b.Signals[0])
}

func (g *Generator) lookupStatic(name string) string {
	v, ok := g.opts.StaticValues[name]
	if !ok {
		return ""
	}
	return EscapeStatic(v)
}
