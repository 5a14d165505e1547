package bindgen

import (
	"strings"

	"golang.org/x/net/html"
)

// field is one key/value pair of an emitted object literal.
type field struct {
	key   string
	value string
}

// call renders name(args...). Arguments that span several lines keep their
// own layout.
func call(name string, args ...string) string {
	return name + "(" + strings.Join(args, ", ") + ")"
}

// block renders an arrow function with a statement body.
func block(params string, stmts []string) string {
	if len(stmts) == 0 {
		return params + " => {}"
	}
	var sb strings.Builder
	sb.WriteString(params)
	sb.WriteString(" => {\n")
	for _, s := range stmts {
		sb.WriteString(IndentCode("\t"+s, "\t"))
		sb.WriteString(";\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// object renders a multi-line object literal.
func object(fields []field) string {
	if len(fields) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, f := range fields {
		sb.WriteString(IndentCode("\t"+f.key+": "+f.value, "\t"))
		sb.WriteString(",\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Render returns the compiled template object literal that replaces the
// original tagged template. indent is written at the start of every line
// after the first.
func (r *Result) Render(indent string) string {
	init := block("(root)", r.Calls)
	obj := object([]field{
		{"template", "`" + r.Template + "`"},
		{"initializeBindings", init},
	})
	return IndentCode(obj, indent)
}

// IndentCode writes prefix after every newline of code that is not inside a
// template literal or string, so literal markup is never altered. Blank
// lines are left empty.
func IndentCode(code, prefix string) string {
	if prefix == "" || !strings.Contains(code, "\n") {
		return code
	}
	var sb strings.Builder
	sb.Grow(len(code))
	i := 0
	for i < len(code) {
		c := code[i]
		switch c {
		case '`':
			end := SkipTemplateLiteral(code, i)
			if end < 0 {
				end = len(code)
			}
			sb.WriteString(code[i:end])
			i = end
			continue
		case '"', '\'':
			end := SkipQuoted(code, i)
			sb.WriteString(code[i:end])
			i = end
			continue
		case '\n':
			sb.WriteByte(c)
			if i+1 < len(code) && code[i+1] != '\n' {
				sb.WriteString(prefix)
			}
			i++
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

// EscapeStatic prepares a static value for insertion into template-literal
// markup: it is HTML-escaped and then escaped for a template literal.
func EscapeStatic(v string) string {
	return escapeTemplateLiteral(html.EscapeString(v))
}

var templateLiteralEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", `\${`)

func escapeTemplateLiteral(s string) string {
	return templateLiteralEscaper.Replace(s)
}
