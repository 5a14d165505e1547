package bindgen

import (
	"strings"
)

// lexAttrName reads an attribute name. A name not followed by '=' is a
// boolean attribute.
func (p *Parser) lexAttrName() {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '=' || c == '>' || c == '"' || c == '\'' || (c == '/' && p.peek(1) == '>') {
			break
		}
		p.pos++
	}
	if p.pos == start {
		// Stray character that cannot start a name; drop it.
		p.pos++
		p.attr = nil
		p.state = stateTagSpace
		return
	}
	p.attr.Name = p.src[start:p.pos]

	// Whitespace is allowed around '='.
	j := p.pos
	for j < len(p.src) && isSpace(p.src[j]) {
		j++
	}
	if j < len(p.src) && p.src[j] == '=' {
		p.pos = j + 1
		p.state = stateAttrEq
		return
	}

	p.attr.End = p.pos
	p.attr.ValueStart = p.pos
	p.attr.ValueEnd = p.pos
	p.finishAttr()
	p.state = stateTagSpace
}

// lexAttrEq skips whitespace after '=' and picks the value form.
func (p *Parser) lexAttrEq() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	p.attr.HasValue = true
	if p.pos >= len(p.src) || p.src[p.pos] == '>' {
		// name= with nothing after it.
		p.attr.ValueStart = p.pos
		p.attr.ValueEnd = p.pos
		p.attr.End = p.pos
		p.finishAttr()
		p.state = stateTagSpace
		return
	}

	if c := p.src[p.pos]; c == '"' || c == '\'' {
		p.attr.Quote = c
		p.pos++
		p.attr.ValueStart = p.pos
		p.state = stateAttrValueQuoted
		return
	}
	p.attr.ValueStart = p.pos
	p.state = stateAttrValueUnquoted
}

// lexAttrValueQuoted reads a quoted value up to the matching quote,
// skipping over embedded expressions so quotes inside them do not end the
// value. A value missing its closing quote ends at the first '>' instead.
func (p *Parser) lexAttrValueQuoted() {
	quote := p.attr.Quote
	i := p.pos
	for i < len(p.src) {
		if isExprStart(p.src, i) {
			end := ScanExpr(p.src, i)
			if end < 0 {
				break
			}
			i = end
			continue
		}
		if p.src[i] == quote {
			p.attr.ValueEnd = i
			p.attr.End = i + 1
			p.pos = i + 1
			p.finishAttr()
			p.state = stateTagSpace
			return
		}
		i++
	}

	p.diags.AddInfof(p.position(p.attr.Start), "missing closing quote in attribute value")
	end := len(p.src)
	if gt := indexOutsideExpr(p.src, p.attr.ValueStart, '>'); gt >= 0 {
		end = gt
	}
	p.attr.ValueEnd = end
	p.attr.End = end
	p.attr.Quote = 0
	p.pos = end
	p.finishAttr()
	p.state = stateTagSpace
}

// lexAttrValueUnquoted reads an unquoted value terminated by whitespace or
// '>'. Embedded expressions are balanced first, so an arrow function such
// as ${() => this.save()} does not end at its '>'.
func (p *Parser) lexAttrValueUnquoted() {
	i := p.pos
	for i < len(p.src) {
		if isExprStart(p.src, i) {
			end := ScanExpr(p.src, i)
			if end < 0 {
				p.diags.AddInfof(p.position(i), "unterminated expression in attribute value")
				i = len(p.src)
				break
			}
			i = end
			continue
		}
		if c := p.src[i]; isSpace(c) || c == '>' {
			break
		}
		i++
	}
	p.attr.ValueEnd = i
	p.attr.End = i
	p.pos = i
	p.finishAttr()
	p.state = stateTagSpace
}

// finishAttr stores the completed attribute on the current element. A
// quoted value that is exactly a ${when(...)} directive becomes the
// element's directive instead of an attribute.
func (p *Parser) finishAttr() {
	a := p.attr
	p.attr = nil
	if a == nil || p.cur == nil {
		return
	}
	a.Value = p.src[a.ValueStart:a.ValueEnd]

	if a.Quote != 0 {
		if cond, ok := parseWhenDirective(p.src, Span{a.ValueStart, a.ValueEnd}); ok {
			if p.cur.Directive != nil {
				p.diags.AddInfof(p.position(a.Start), "<%s> has more than one when() directive; keeping the first", p.cur.TagName)
				return
			}
			p.cur.Directive = &Directive{
				Condition:      cond.Text(p.src),
				ConditionStart: cond.Start,
				ConditionEnd:   cond.End,
				Start:          a.Start,
				End:            a.End,
			}
			return
		}
	}

	if a.Name == "" {
		p.diags.AddInfof(p.position(a.Start), "ignoring attribute value without a name in <%s>", p.cur.TagName)
		return
	}
	p.cur.Attrs = append(p.cur.Attrs, a)
}

// parseWhenDirective reports whether the span holds exactly
// ${when(<condition>)} and returns the condition span.
func parseWhenDirective(src string, s Span) (Span, bool) {
	s = TrimSpan(src, s)
	if !isExprStart(src, s.Start) || ScanExpr(src, s.Start) != s.End {
		return Span{}, false
	}
	inner := TrimSpan(src, Span{s.Start + 2, s.End - 1})
	call, ok := matchCall(src, inner, "when")
	if !ok || len(call.Args) != 1 {
		return Span{}, false
	}
	return call.Args[0], true
}

// Call is a parsed call expression name(args...).
type Call struct {
	Name string
	Args []Span
	Span Span
}

// matchCall reports whether the span s holds exactly one call of the named
// function and returns its arguments.
func matchCall(src string, s Span, name string) (Call, bool) {
	text := s.Text(src)
	if !strings.HasPrefix(text, name) {
		return Call{}, false
	}
	open := s.Start + len(name)
	for open < s.End && isSpace(src[open]) {
		open++
	}
	if open >= s.End || src[open] != '(' {
		return Call{}, false
	}
	args, end, ok := SplitArgs(src, open)
	if !ok || end != s.End {
		return Call{}, false
	}
	return Call{Name: name, Args: args, Span: s}, true
}

// indexOutsideExpr returns the offset of the first c at or after from that
// is not inside an embedded expression, or -1.
func indexOutsideExpr(src string, from int, c byte) int {
	i := from
	for i < len(src) {
		if isExprStart(src, i) {
			end := ScanExpr(src, i)
			if end < 0 {
				return -1
			}
			i = end
			continue
		}
		if src[i] == c {
			return i
		}
		i++
	}
	return -1
}

// indexFold returns the offset of the first ASCII case-insensitive match of
// sub in s, or -1.
func indexFold(s, sub string) int {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], sub) {
			return i
		}
	}
	return -1
}
