package bindgen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/grindlemire/go-bindc/internal/edit"
)

// Runtime primitive names.
const (
	PrimBindText             = "bindText"
	PrimBindStyle            = "bindStyle"
	PrimBindAttr             = "bindAttr"
	PrimBindConditional      = "bindConditional"
	PrimBindList             = "bindList"
	PrimSetupEventDelegation = "setupEventDelegation"
)

// memberPathRegex matches a handler that is a plain method reference.
var memberPathRegex = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*$`)

// scopeCalls emits the calls for the bindings of one scope. Bindings inside
// a conditional element belong to that element's nested initializer and
// are emitted there.
func (g *Generator) scopeCalls(u *unit, bs []*Binding) []string {
	var calls []string
	var events []*Binding
	for _, b := range bs {
		if nestedInConditional(bs, b) {
			continue
		}
		switch b.Kind {
		case KindText:
			calls = append(calls, g.valueCall(u, b, PrimBindText, ""))
		case KindAttribute:
			calls = append(calls, g.valueCall(u, b, PrimBindAttr, strconv.Quote(b.Property)))
		case KindStyle:
			calls = append(calls, g.valueCall(u, b, PrimBindStyle, strconv.Quote(CSSPropertyToCamel(b.Property))))
		case KindConditionalElement:
			calls = append(calls, g.conditionalElementCall(u, b, insideElement(bs, b)))
		case KindConditionalBranch:
			calls = append(calls, g.branchCall(u, b))
		case KindList:
			calls = append(calls, g.listCall(u, b))
		case KindEvent:
			events = append(events, b)
		}
	}
	if len(events) > 0 {
		calls = append(calls, g.eventCall(u, events))
	}
	return calls
}

// nestedInConditional reports whether b lies inside the element of another
// conditional-element binding in bs.
func nestedInConditional(bs []*Binding, b *Binding) bool {
	for _, c := range bs {
		if c != b && c.Kind == KindConditionalElement && b.Contains(c.Element.TagStart, c.Element.CloseTagEnd) {
			return true
		}
	}
	return false
}

// insideElement returns the bindings of bs inside c's element, c excluded.
func insideElement(bs []*Binding, c *Binding) []*Binding {
	var out []*Binding
	for _, b := range bs {
		if b != c && b.Contains(c.Element.TagStart, c.Element.CloseTagEnd) {
			out = append(out, b)
		}
	}
	return out
}

func (g *Generator) use(prim string) string {
	g.primitives[prim] = true
	return prim
}

// anchorOf returns the anchor id of b as a quoted string.
func (g *Generator) anchorOf(u *unit, b *Binding) string {
	if id, ok := u.own[b]; ok {
		return strconv.Quote(id)
	}
	return strconv.Quote(u.anchors[b.Element])
}

// source returns the source argument: the source itself for a simple
// binding, an array of every referenced source otherwise.
func (g *Generator) source(b *Binding) string {
	if b.Simple && len(b.Signals) == 1 {
		return g.opts.SourcePrefix + b.Signals[0]
	}
	refs := make([]string, len(b.Signals))
	for i, s := range b.Signals {
		refs[i] = g.opts.SourcePrefix + s
	}
	return "[" + strings.Join(refs, ", ") + "]"
}

// evaluator returns the arrow function that recomputes a compound value.
func evaluator(b *Binding) string {
	switch b.Kind {
	case KindAttribute, KindStyle:
		return "() => `" + b.Expression + "`"
	default:
		return "() => (" + b.Inner + ")"
	}
}

// valueCall emits bindText, bindAttr or bindStyle.
func (g *Generator) valueCall(u *unit, b *Binding, prim, property string) string {
	args := []string{"root", g.source(b), g.anchorOf(u, b)}
	if property != "" {
		args = append(args, property)
	}
	if !b.Simple {
		args = append(args, evaluator(b))
	}
	return call(g.use(prim), args...)
}

func (g *Generator) conditionalElementCall(u *unit, b *Binding, nested []*Binding) string {
	g.use(PrimBindConditional)
	e := b.Element
	template := edit.ApplyRange(u.text, e.TagStart, e.CloseTagEnd, u.edits)
	args := []string{
		"root",
		g.source(b),
		g.anchorOf(u, b),
		"`" + template + "`",
		block("(root)", g.scopeCalls(u, nested)),
	}
	if !b.Simple {
		args = append(args, object([]field{{"evaluate", evaluator(b)}}))
	}
	return call(PrimBindConditional, args...)
}

func (g *Generator) branchCall(u *unit, b *Binding) string {
	g.use(PrimBindConditional)
	subs := u.subs[b]
	then, els := subs[0], subs[1]

	var opts []field
	if !b.Simple {
		opts = append(opts, field{"evaluate", evaluator(b)})
	}
	opts = append(opts, field{"else", "`" + els.template + "`"})
	if len(els.calls) > 0 {
		opts = append(opts, field{"initElse", block("(root)", els.calls)})
	}

	return call(PrimBindConditional,
		"root",
		g.source(b),
		g.anchorOf(u, b),
		"`"+then.template+"`",
		block("(root)", then.calls),
		object(opts),
	)
}

func (g *Generator) listCall(u *unit, b *Binding) string {
	g.use(PrimBindList)
	l := b.List
	subs := u.subs[b]
	body := subs[0]

	params := l.Item
	if l.Index != "" {
		params += ", " + l.Index
	}

	args := []string{
		"root",
		g.source(b),
		g.anchorOf(u, b),
		"(" + params + ") => `" + body.template + "`",
		block("(root, "+params+")", body.calls),
	}

	var opts []field
	if len(subs) > 1 {
		empty := subs[1]
		opts = append(opts, field{"empty", "`" + empty.template + "`"})
		if len(empty.calls) > 0 {
			opts = append(opts, field{"initEmpty", block("(root)", empty.calls)})
		}
	}
	if l.KeyFn != "" {
		opts = append(opts, field{"key", l.KeyFn})
	}
	if !b.Simple {
		opts = append(opts, field{"evaluate", evaluator(b)})
	}
	if len(opts) > 0 {
		args = append(args, object(opts))
	}
	return call(PrimBindList, args...)
}

// eventCall emits one setupEventDelegation call for every event binding of
// a scope. Event names are sorted; handlers keep source order.
func (g *Generator) eventCall(u *unit, events []*Binding) string {
	g.use(PrimSetupEventDelegation)

	byName := make(map[string][]field)
	var names []string
	for _, b := range events {
		name := b.Event.Name
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], field{g.anchorOf(u, b), g.handler(u, b)})
	}
	sort.Strings(names)

	fields := make([]field, len(names))
	for i, name := range names {
		fields[i] = field{objectKey(name), object(byName[name])}
	}
	return call(PrimSetupEventDelegation, "root", object(fields))
}

// handler wraps an event handler expression with its modifiers.
func (g *Generator) handler(u *unit, b *Binding) string {
	ev := b.Event
	invoke := "(" + ev.Handler + ")(e)"
	if memberPathRegex.MatchString(ev.Handler) {
		invoke = ev.Handler + "(e)"
	}

	var stmts []string
	for _, m := range ev.Modifiers {
		switch m {
		case "self":
			stmts = append(stmts, fmt.Sprintf("if (e.target.%s !== %s) return", anchorAttr, g.anchorOf(u, b)))
		case "stop", "stopPropagation":
			stmts = append(stmts, "e.stopPropagation()")
		case "prevent", "preventDefault":
			stmts = append(stmts, "e.preventDefault()")
		default:
			g.warnf(u, b.Start, "unknown event modifier %q on %s", m, b.Attr.Name)
		}
	}
	if len(stmts) == 0 {
		return "(e) => " + invoke
	}
	stmts = append(stmts, invoke)
	return "(e) => { " + strings.Join(stmts, "; ") + "; }"
}

func objectKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}
