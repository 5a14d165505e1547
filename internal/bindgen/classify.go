package bindgen

import (
	"fmt"
	"sort"
	"strings"
)

// classifier turns the markup tree of a ParsedTemplate into bindings.
type classifier struct {
	t        *ParsedTemplate
	src      string
	bindings []*Binding
}

// Classify walks the template and fills t.Bindings in first-appearance
// order. Directives with malformed arguments are dropped with a warning;
// the rest of the template is still classified.
func Classify(t *ParsedTemplate) []*Binding {
	c := &classifier{t: t, src: t.Text}
	t.Root.Walk(func(e *Element) bool {
		c.element(e)
		return true
	})

	sort.SliceStable(c.bindings, func(i, j int) bool {
		return c.bindings[i].Start < c.bindings[j].Start
	})
	t.Bindings = c.bindings
	return c.bindings
}

// ClassifyText parses and classifies template text in one call.
func ClassifyText(filename, text string) *ParsedTemplate {
	t := NewParser(filename, text).Parse()
	Classify(t)
	return t
}

func (c *classifier) add(b *Binding) {
	b.Expression = c.src[b.Start:b.End]
	c.bindings = append(c.bindings, b)
}

func (c *classifier) warn(offset int, format string, args ...any) {
	c.t.Diagnostics.AddWarningf(c.t.Position(offset), format, args...)
}

func (c *classifier) warnHint(offset int, hint, format string, args ...any) {
	c.t.Diagnostics.AddWarningWithHint(c.t.Position(offset), fmt.Sprintf(format, args...), hint)
}

func (c *classifier) element(e *Element) {
	for _, a := range e.Attrs {
		switch {
		case strings.HasPrefix(a.Name, "@"):
			c.event(e, a)
		case strings.EqualFold(a.Name, "style"):
			c.style(e, a)
		default:
			c.attribute(e, a)
		}
	}

	if d := e.Directive; d != nil {
		cond := Span{d.ConditionStart, d.ConditionEnd}
		_, simple := SingleRead(d.Condition)
		c.add(&Binding{
			Kind:    KindConditionalElement,
			Element: e,
			Start:   d.Start,
			End:     d.End,
			Signals: FindReads(cond.Text(c.src)),
			Inner:   d.Condition,
			Simple:  simple,
		})
	}

	for _, tn := range e.Text {
		for _, s := range exprSpans(c.src, tn.Start, tn.End) {
			c.textExpr(e, tn, s)
		}
	}
}

// textExpr classifies one ${...} occurrence in a text run. Branch and list
// directives take priority over plain reads.
func (c *classifier) textExpr(e *Element, tn *TextNode, s Span) {
	inner := innerSpan(c.src, s)
	text := inner.Text(c.src)

	if call, ok := matchCall(c.src, inner, "whenElse"); ok {
		c.branch(e, tn, s, call)
		return
	}
	if call, ok := matchCall(c.src, inner, "repeat"); ok {
		c.list(e, tn, s, call)
		return
	}

	signals := FindReads(text)
	if len(signals) == 0 {
		return
	}
	_, simple := SingleRead(text)
	c.add(&Binding{
		Kind:    KindText,
		Element: e,
		Start:   s.Start,
		End:     s.End,
		Signals: signals,
		Inner:   text,
		Simple:  simple,
		Text:    tn,
	})
}

// attribute classifies a plain attribute value. Every expression in the
// value contributes its reads; a value that is exactly one read is simple.
func (c *classifier) attribute(e *Element, a *Attribute) {
	if !a.HasValue {
		return
	}
	exprs := exprSpans(c.src, a.ValueStart, a.ValueEnd)
	signals := readsIn(c.src, exprs)
	if len(signals) == 0 {
		return
	}

	b := &Binding{
		Kind:     KindAttribute,
		Element:  e,
		Start:    a.ValueStart,
		End:      a.ValueEnd,
		Signals:  signals,
		Attr:     a,
		Property: a.Name,
	}
	if len(exprs) == 1 && exprs[0] == TrimSpan(c.src, Span{a.ValueStart, a.ValueEnd}) {
		b.Inner = innerSpan(c.src, exprs[0]).Text(c.src)
		_, b.Simple = SingleRead(b.Inner)
	}
	c.add(b)
}

// style splits a style value into declarations and binds each
// "property: value" whose value reads a source. A reactive expression that
// does not sit in a declaration value binds the whole attribute instead.
func (c *classifier) style(e *Element, a *Attribute) {
	if !a.HasValue {
		return
	}

	type decl struct {
		prop  string
		value Span
	}
	var decls []decl
	whole := false

	start := a.ValueStart
	flush := func(end int) {
		s := Span{start, end}
		exprs := exprSpans(c.src, s.Start, s.End)
		if len(readsIn(c.src, exprs)) == 0 {
			return
		}
		colon := indexOutsideExpr(c.src[:s.End], s.Start, ':')
		if colon < 0 {
			whole = true
			return
		}
		prop := strings.TrimSpace(c.src[s.Start:colon])
		if !cssPropertyRegex.MatchString(prop) || len(readsIn(c.src, exprSpans(c.src, s.Start, colon))) > 0 {
			whole = true
			return
		}
		decls = append(decls, decl{prop: prop, value: TrimSpan(c.src, Span{colon + 1, s.End})})
	}

	i := a.ValueStart
	for i < a.ValueEnd {
		if isExprStart(c.src, i) {
			end := ScanExpr(c.src, i)
			if end < 0 || end > a.ValueEnd {
				break
			}
			i = end
			continue
		}
		if c.src[i] == ';' {
			flush(i)
			start = i + 1
		}
		i++
	}
	flush(a.ValueEnd)

	if whole {
		c.attribute(e, a)
		return
	}
	for _, d := range decls {
		exprs := exprSpans(c.src, d.value.Start, d.value.End)
		b := &Binding{
			Kind:     KindStyle,
			Element:  e,
			Start:    d.value.Start,
			End:      d.value.End,
			Signals:  readsIn(c.src, exprs),
			Attr:     a,
			Property: d.prop,
		}
		if len(exprs) == 1 && exprs[0] == d.value {
			b.Inner = innerSpan(c.src, exprs[0]).Text(c.src)
			_, b.Simple = SingleRead(b.Inner)
		}
		c.add(b)
	}
}

// event classifies an @name.modifier attribute. The value must be exactly
// one expression, which becomes the handler.
func (c *classifier) event(e *Element, a *Attribute) {
	parts := strings.Split(a.Name[1:], ".")
	if parts[0] == "" {
		c.warn(a.Start, "event attribute %q has no event name", a.Name)
		return
	}
	value := TrimSpan(c.src, Span{a.ValueStart, a.ValueEnd})
	if !a.HasValue || !isExprStart(c.src, value.Start) || ScanExpr(c.src, value.Start) != value.End {
		c.warn(a.Start, "event attribute %q must be bound to exactly one ${...} handler", a.Name)
		return
	}
	handler := innerSpan(c.src, value).Text(c.src)
	if handler == "" {
		c.warn(a.Start, "event attribute %q has an empty handler", a.Name)
		return
	}

	var mods []string
	for _, m := range parts[1:] {
		if m != "" {
			mods = append(mods, m)
		}
	}
	c.add(&Binding{
		Kind:     KindEvent,
		Element:  e,
		Start:    a.Start,
		End:      a.End,
		Inner:    handler,
		Attr:     a,
		Property: parts[0],
		Event:    &Event{Name: parts[0], Modifiers: mods, Handler: handler},
	})
}
