package bindgen

import (
	"strings"
)

// Span is a half-open byte range [Start, End) into a source string.
type Span struct {
	Start int
	End   int
}

// Text returns the spanned text of src.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// Empty reports whether the span has no content.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// isExprStart reports whether src[pos:] begins an embedded "${" expression.
func isExprStart(src string, pos int) bool {
	return pos+1 < len(src) && src[pos] == '$' && src[pos+1] == '{'
}

// ScanExpr scans an embedded expression starting at the "${" at pos and
// returns the offset just past its matching '}', or -1 if the expression is
// unterminated. Braces are counted; string literals are skipped; a backtick
// switches into template-literal tracking, which counts its own nested
// ${...} expressions and ends on the matching unescaped backtick.
func ScanExpr(src string, pos int) int {
	if !isExprStart(src, pos) {
		return -1
	}
	i := pos + 2
	depth := 1
	for i < len(src) {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '`':
			end := SkipTemplateLiteral(src, i)
			if end < 0 {
				return -1
			}
			i = end
			continue
		case '"', '\'':
			i = SkipQuoted(src, i)
			continue
		}
		i++
	}
	return -1
}

// SkipTemplateLiteral skips a template literal starting at the backtick at
// pos and returns the offset just past the closing backtick, or -1 if the
// literal is unterminated.
func SkipTemplateLiteral(src string, pos int) int {
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '`':
			return i + 1
		case '$':
			if isExprStart(src, i) {
				end := ScanExpr(src, i)
				if end < 0 {
					return -1
				}
				i = end
				continue
			}
		}
		i++
	}
	return -1
}

// SkipQuoted skips a single- or double-quoted string literal starting at
// pos. An unterminated literal ends at the next newline.
func SkipQuoted(src string, pos int) int {
	quote := src[pos]
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return i
		case quote:
			return i + 1
		}
		i++
	}
	return len(src)
}

// SkipComment skips a // or /* */ comment at pos, returning pos unchanged if
// there is none.
func SkipComment(src string, pos int) int {
	if pos+1 >= len(src) || src[pos] != '/' {
		return pos
	}
	switch src[pos+1] {
	case '/':
		if nl := strings.IndexByte(src[pos:], '\n'); nl >= 0 {
			return pos + nl
		}
		return len(src)
	case '*':
		if end := strings.Index(src[pos+2:], "*/"); end >= 0 {
			return pos + 2 + end + 2
		}
		return len(src)
	}
	return pos
}

// SplitArgs splits the argument list of a call whose '(' is at open. It
// balances parentheses, brackets and braces outside of template literals
// and skips over strings and template literals (whose own ${...} nesting is
// tracked separately). It returns the trimmed top-level argument spans and
// the offset just past the matching ')'. ok is false if the list is
// unterminated.
func SplitArgs(src string, open int) (args []Span, end int, ok bool) {
	if open >= len(src) || src[open] != '(' {
		return nil, -1, false
	}
	return SplitList(src, open)
}

// SplitList is SplitArgs for any bracketed list: a call's arguments, an
// array literal or an object literal's entries, depending on whether
// src[open] is '(', '[' or '{'.
func SplitList(src string, open int) (args []Span, end int, ok bool) {
	if open >= len(src) {
		return nil, -1, false
	}
	var closer byte
	switch src[open] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	case '{':
		closer = '}'
	default:
		return nil, -1, false
	}

	depth := 0
	argStart := open + 1
	i := open
	for i < len(src) {
		c := src[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				if c != closer {
					return nil, -1, false
				}
				// An empty final argument is either "()" or a trailing comma.
				if arg := TrimSpan(src, Span{argStart, i}); !arg.Empty() {
					args = append(args, arg)
				}
				return args, i + 1, true
			}
		case ',':
			if depth == 1 {
				args = append(args, TrimSpan(src, Span{argStart, i}))
				argStart = i + 1
			}
		case '`':
			next := SkipTemplateLiteral(src, i)
			if next < 0 {
				return nil, -1, false
			}
			i = next
			continue
		case '"', '\'':
			i = SkipQuoted(src, i)
			continue
		case '/':
			if next := SkipComment(src, i); next != i {
				i = next
				continue
			}
		}
		i++
	}
	return nil, -1, false
}

// TrimSpan narrows s to exclude leading and trailing whitespace.
func TrimSpan(src string, s Span) Span {
	for s.Start < s.End && isSpace(src[s.Start]) {
		s.Start++
	}
	for s.End > s.Start && isSpace(src[s.End-1]) {
		s.End--
	}
	return s
}

// TemplateLiteralContent returns the span of the content between the
// backticks when the span s holds exactly one template literal, optionally
// tagged (html`...`) and optionally wrapped in parentheses.
func TemplateLiteralContent(src string, s Span) (Span, bool) {
	s = TrimSpan(src, s)
	for s.End-s.Start >= 2 && src[s.Start] == '(' && src[s.End-1] == ')' {
		inner := TrimSpan(src, Span{s.Start + 1, s.End - 1})
		if _, end, ok := SplitArgs(src, s.Start); !ok || end != s.End {
			break
		}
		s = inner
	}

	i := s.Start
	for i < s.End && IsIdentChar(src[i]) {
		i++
	}
	for i < s.End && isSpace(src[i]) {
		i++
	}
	if i >= s.End || src[i] != '`' {
		return Span{}, false
	}
	end := SkipTemplateLiteral(src, i)
	if end != s.End {
		return Span{}, false
	}
	return Span{i + 1, end - 1}, true
}

// findArrow returns the offset of the top-level "=>" in s, or -1.
func findArrow(src string, s Span) int {
	depth := 0
	i := s.Start
	for i < s.End {
		switch src[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '`':
			next := SkipTemplateLiteral(src, i)
			if next < 0 {
				return -1
			}
			i = next
			continue
		case '"', '\'':
			i = SkipQuoted(src, i)
			continue
		case '=':
			if depth == 0 && i+1 < s.End && src[i+1] == '>' {
				return i
			}
		}
		i++
	}
	return -1
}

// ArrowFunction is a parsed "(a, b) => body" expression.
type ArrowFunction struct {
	Params []string
	Body   Span
}

// ParseArrow parses an arrow function in s. Parameter lists may be
// parenthesized or a single bare identifier.
func ParseArrow(src string, s Span) (ArrowFunction, bool) {
	s = TrimSpan(src, s)
	arrow := findArrow(src, s)
	if arrow < 0 {
		return ArrowFunction{}, false
	}

	params := TrimSpan(src, Span{s.Start, arrow})
	body := TrimSpan(src, Span{arrow + 2, s.End})
	if body.Empty() {
		return ArrowFunction{}, false
	}

	fn := ArrowFunction{Body: body}
	text := params.Text(src)
	if strings.HasPrefix(text, "(") {
		args, end, ok := SplitArgs(src, params.Start)
		if !ok || end != params.End {
			return ArrowFunction{}, false
		}
		for _, a := range args {
			fn.Params = append(fn.Params, a.Text(src))
		}
		return fn, true
	}

	if text == "" || !IsIdentifier(text) {
		return ArrowFunction{}, false
	}
	fn.Params = []string{text}
	return fn, true
}

// IsIdentifier reports whether s is a plain script identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !IsIdentChar(c) || (i == 0 && c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// IsIdentChar reports whether c may appear in a script identifier.
func IsIdentChar(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == ':' || c == '.'
}
