package ctfe

import (
	"strings"

	"github.com/grindlemire/go-bindc/internal/bindgen"
)

// prop is one entry of an object literal.
type prop struct {
	Key       string
	Value     bindgen.Span
	Shorthand bool
}

// props parses the object literal in s into its entries. Spread entries,
// computed keys and methods have no static attribute form.
func (e *evaluator) props(s bindgen.Span) ([]prop, bool) {
	if s.Empty() || e.code[s.Start] != '{' {
		return nil, false
	}
	entries, end, ok := bindgen.SplitList(e.code, s.Start)
	if !ok || end != s.End {
		return nil, false
	}
	out := make([]prop, 0, len(entries))
	for _, entry := range entries {
		p, ok := parseProp(e.code, entry)
		if !ok {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}

// parseProp parses "key: value", "'key': value" or a shorthand "key".
func parseProp(code string, s bindgen.Span) (prop, bool) {
	if s.Empty() {
		return prop{}, false
	}
	var p prop
	i := s.Start
	switch c := code[i]; {
	case c == '"' || c == '\'':
		end := bindgen.SkipQuoted(code, i)
		if end > s.End || code[end-1] != c || end-i < 2 {
			return prop{}, false
		}
		p.Key = code[i+1 : end-1]
		i = end
	case bindgen.IsIdentChar(c) && !(c >= '0' && c <= '9'):
		for i < s.End && bindgen.IsIdentChar(code[i]) {
			i++
		}
		p.Key = code[s.Start:i]
	default:
		return prop{}, false
	}

	for i < s.End && isSpace(code[i]) {
		i++
	}
	if i == s.End {
		if code[s.Start] == '"' || code[s.Start] == '\'' {
			return prop{}, false
		}
		p.Shorthand = true
		p.Value = bindgen.Span{Start: s.Start, End: i}
		return p, true
	}
	if code[i] != ':' {
		return prop{}, false
	}
	p.Value = bindgen.TrimSpan(code, bindgen.Span{Start: i + 1, End: s.End})
	if p.Value.Empty() {
		return prop{}, false
	}
	return p, true
}

// renderElement renders an empty element for tag with one attribute per
// prop. Literal values become static attributes; anything else is
// interpolated. true renders a bare attribute; false, null and undefined
// omit it.
func renderElement(src, tag string, props []prop) string {
	var b strings.Builder
	b.WriteString("<" + tag)
	for _, p := range props {
		name := AttrName(p.Key)
		value := strings.TrimSpace(p.Value.Text(src))
		switch value {
		case "true":
			b.WriteString(" " + name)
			continue
		case "false", "null", "undefined":
			continue
		}
		if lit, ok := bindgen.EvalLiteral(value); ok {
			b.WriteString(" " + name + `="` + bindgen.EscapeStatic(lit) + `"`)
			continue
		}
		b.WriteString(" " + name + `="${` + value + `}"`)
	}
	b.WriteString("></" + tag + ">")
	return b.String()
}

// AttrName converts a camelCase prop key to its kebab-case attribute name.
// Keys that are not plain identifiers, such as quoted event names, are
// used as written.
func AttrName(key string) string {
	if !bindgen.IsIdentifier(key) {
		return key
	}
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
