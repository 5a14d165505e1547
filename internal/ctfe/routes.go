package ctfe

import (
	"regexp"
	"strings"

	"github.com/grindlemire/go-bindc/internal/bindgen"
	"github.com/grindlemire/go-bindc/internal/edit"
)

// .then(m => m.HomePage)
var thenExportRegex = regexp.MustCompile(`^\s*\.\s*then\s*\(\s*\(?\s*([A-Za-z_$][\w$]*)\s*\)?\s*=>\s*([A-Za-z_$][\w$]*)\s*\.\s*([A-Za-z_$][\w$]*)`)

// route injects a selector into the object literal at open when it is a
// route entry: it has a path and loads its page through a dynamic import.
func (e *evaluator) route(open int) {
	entries, _, ok := bindgen.SplitList(e.code, open)
	if !ok || len(entries) == 0 {
		return
	}

	var hasPath, hasSelector bool
	importAt := -1
	for _, entry := range entries {
		p, ok := parseProp(e.code, entry)
		if !ok {
			continue
		}
		switch p.Key {
		case "path":
			hasPath = true
		case "selector":
			hasSelector = true
		}
		if importAt < 0 && !p.Shorthand {
			importAt = dynamicImport(e.code, p.Value)
		}
	}
	if !hasPath || importAt < 0 {
		return
	}
	if hasSelector {
		e.infof(open, "route already has a selector")
		return
	}

	paren := importAt + len("import")
	for paren < len(e.code) && isSpace(e.code[paren]) {
		paren++
	}
	args, end, ok := bindgen.SplitArgs(e.code, paren)
	if !ok || len(args) != 1 {
		e.warnf(importAt, "route import takes one module path")
		return
	}
	spec, ok := literalSpec(args[0].Text(e.code))
	if !ok {
		e.warnf(importAt, "route import path %s is not a string literal", args[0].Text(e.code))
		return
	}

	export := "default"
	if m := thenExportRegex.FindStringSubmatch(e.code[end:]); m != nil && m[1] == m[2] {
		export = m[3]
	}
	tag, ok := e.resolveTag(importAt, spec, export)
	if !ok {
		return
	}

	e.res.Edits = append(e.res.Edits, edit.Insert(entries[0].Start, "selector: '<"+tag+"></"+tag+">', "))
	e.res.Routes++
}

// dynamicImport returns the offset of an import(...) call in the value s
// that belongs to the value itself rather than to a nested object or array
// literal, or -1. Function bodies do not count as nesting.
func dynamicImport(code string, s bindgen.Span) int {
	var open []bool // per open bracket: whether it nests a literal
	depth := 0
	i := s.Start
	for i < s.End {
		c := code[i]
		switch {
		case c == '"' || c == '\'':
			i = bindgen.SkipQuoted(code, i)
			continue
		case c == '`':
			end := bindgen.SkipTemplateLiteral(code, i)
			if end < 0 {
				return -1
			}
			i = end
			continue
		case c == '[' || c == '{':
			nests := c == '[' || !functionBody(code, s.Start, i)
			open = append(open, nests)
			if nests {
				depth++
			}
		case c == ']' || c == '}':
			if n := len(open); n > 0 {
				if open[n-1] {
					depth--
				}
				open = open[:n-1]
			}
		case depth == 0 && strings.HasPrefix(code[i:s.End], "import") && (i == 0 || !bindgen.IsIdentChar(code[i-1])):
			j := i + len("import")
			for j < s.End && isSpace(code[j]) {
				j++
			}
			if j < s.End && code[j] == '(' {
				return i
			}
		}
		i++
	}
	return -1
}

// functionBody reports whether the brace at pos opens a function body,
// meaning it follows "=>" or a parameter list's ')'.
func functionBody(code string, start, pos int) bool {
	i := pos - 1
	for i >= start && isSpace(code[i]) {
		i--
	}
	if i < start {
		return false
	}
	return code[i] == ')' || (code[i] == '>' && i > start && code[i-1] == '=')
}

// literalSpec evaluates a module path argument that is a string literal or
// a concatenation of them.
func literalSpec(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" || !strings.ContainsRune(`'"`+"`", rune(arg[0])) {
		return "", false
	}
	return bindgen.EvalLiteral(arg)
}
