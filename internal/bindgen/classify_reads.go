package bindgen

import (
	"regexp"
	"strings"
)

// readRegex matches a reactive read: this.<name>()
var readRegex = regexp.MustCompile(`this\.([A-Za-z_$][\w$]*)\s*\(\s*\)`)

// singleReadRegex matches an expression that is exactly one reactive read.
var singleReadRegex = regexp.MustCompile(`^\s*this\.([A-Za-z_$][\w$]*)\s*\(\s*\)\s*$`)

// cssPropertyRegex matches a CSS property name, custom properties included.
var cssPropertyRegex = regexp.MustCompile(`^-{0,2}[A-Za-z][A-Za-z0-9-]*$`)

// FindReads returns the names of all reactive reads in expr, de-duplicated
// in order of first reference.
func FindReads(expr string) []string {
	matches := readRegex.FindAllStringSubmatchIndex(expr, -1)

	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		// "this" must not be the tail of a longer identifier or member path.
		if m[0] > 0 {
			if prev := expr[m[0]-1]; IsIdentChar(prev) || prev == '.' {
				continue
			}
		}
		name := expr[m[2]:m[3]]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// SingleRead returns the source name when expr is exactly one reactive read.
func SingleRead(expr string) (string, bool) {
	m := singleReadRegex.FindStringSubmatch(expr)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// exprSpans returns the spans of every ${...} expression in src[start:end].
// An unterminated expression ends the scan.
func exprSpans(src string, start, end int) []Span {
	var spans []Span
	i := start
	for i < end {
		if isExprStart(src, i) {
			e := ScanExpr(src, i)
			if e < 0 || e > end {
				break
			}
			spans = append(spans, Span{i, e})
			i = e
			continue
		}
		i++
	}
	return spans
}

// innerSpan returns the trimmed content of a ${...} span.
func innerSpan(src string, s Span) Span {
	return TrimSpan(src, Span{s.Start + 2, s.End - 1})
}

// readsIn collects the reactive reads of every expression in spans.
func readsIn(src string, spans []Span) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range spans {
		for _, name := range FindReads(innerSpan(src, s).Text(src)) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// CSSPropertyToCamel converts a CSS property name to the camelCase form
// used for direct style property assignment: background-color becomes
// backgroundColor and -webkit-transition becomes WebkitTransition. Custom
// properties (--name) are returned unchanged.
func CSSPropertyToCamel(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	var sb strings.Builder
	upper := false
	for i := 0; i < len(prop); i++ {
		c := prop[i]
		if c == '-' {
			upper = i > 0 || strings.HasPrefix(prop, "-webkit-") || strings.HasPrefix(prop, "-moz-")
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		sb.WriteByte(c)
	}
	return sb.String()
}
