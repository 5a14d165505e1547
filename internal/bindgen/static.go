package bindgen

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSignalFactories are the factory functions whose literal argument
// gives a reactive source its initial value.
var DefaultSignalFactories = []string{"signal"}

// StaticValues scans script source for "<name> = <factory>(<literal>)"
// initializers and returns the statically known initial value of each
// source, already converted to its string form. Sources initialized more
// than once with different values, or with anything other than a literal,
// are omitted.
func StaticValues(src string, factories []string) map[string]string {
	if len(factories) == 0 {
		factories = DefaultSignalFactories
	}
	quoted := make([]string, len(factories))
	for i, f := range factories {
		quoted[i] = regexp.QuoteMeta(f)
	}
	re := regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*(?::[^=;(){}]+?)?=\s*(?:` + strings.Join(quoted, "|") + `)\s*(?:<[^()<>]*>)?\s*\(`)

	values := make(map[string]string)
	conflicts := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatchIndex(src, -1) {
		if !assignmentTarget(src, m[0]) {
			continue
		}
		name := src[m[2]:m[3]]
		args, _, ok := SplitArgs(src, m[1]-1)
		if !ok || len(args) != 1 {
			conflicts[name] = true
			continue
		}
		v, ok := EvalLiteral(args[0].Text(src))
		if !ok {
			conflicts[name] = true
			continue
		}
		if prev, seen := values[name]; seen && prev != v {
			conflicts[name] = true
		}
		values[name] = v
	}
	for name := range conflicts {
		delete(values, name)
	}
	return values
}

// assignmentTarget reports whether the identifier at offset is a field or
// variable name rather than a member of some other object. "this.x" is
// allowed.
func assignmentTarget(src string, offset int) bool {
	if offset == 0 {
		return true
	}
	prev := src[offset-1]
	if IsIdentChar(prev) {
		return false
	}
	if prev == '.' {
		return strings.HasSuffix(src[:offset-1], "this") &&
			(offset-5 == 0 || !IsIdentChar(src[offset-6]))
	}
	return true
}

type literalKind int

const (
	literalString literalKind = iota
	literalNumber
	literalBool
)

type literal struct {
	kind literalKind
	str  string
	num  float64
	bool bool
}

// String formats the value the way script string conversion does.
func (l literal) String() string {
	switch l.kind {
	case literalNumber:
		return formatNumber(l.num)
	case literalBool:
		return strconv.FormatBool(l.bool)
	default:
		return l.str
	}
}

func (l literal) number() float64 {
	switch l.kind {
	case literalNumber:
		return l.num
	case literalBool:
		if l.bool {
			return 1
		}
		return 0
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(l.str), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case math.Abs(f) < 1e21 && math.Abs(f) >= 1e-6:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// Exponents are written without padding: 1e+21, not 1e+021.
		return strings.Replace(s, "e+0", "e+", 1)
	}
}

// EvalLiteral evaluates a literal expression: a number, boolean, quoted
// string, backtick string without interpolation, or a "+" chain of those
// evaluated left to right. null, undefined and everything else is unknown.
func EvalLiteral(expr string) (string, bool) {
	e := &literalEval{src: strings.TrimSpace(expr)}
	if e.src == "" {
		return "", false
	}
	v, ok := e.operand()
	if !ok {
		return "", false
	}
	for {
		e.skipSpace()
		if e.pos >= len(e.src) {
			return v.String(), true
		}
		if e.src[e.pos] != '+' {
			return "", false
		}
		e.pos++
		rhs, ok := e.operand()
		if !ok {
			return "", false
		}
		v = add(v, rhs)
	}
}

func add(a, b literal) literal {
	if a.kind == literalString || b.kind == literalString {
		return literal{kind: literalString, str: a.String() + b.String()}
	}
	return literal{kind: literalNumber, num: a.number() + b.number()}
}

type literalEval struct {
	src string
	pos int
}

func (e *literalEval) skipSpace() {
	for e.pos < len(e.src) && isSpace(e.src[e.pos]) {
		e.pos++
	}
}

func (e *literalEval) operand() (literal, bool) {
	e.skipSpace()
	if e.pos >= len(e.src) {
		return literal{}, false
	}
	switch c := e.src[e.pos]; {
	case c == '"' || c == '\'' || c == '`':
		return e.str(c)
	case c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return e.number()
	case isLetter(c):
		start := e.pos
		for e.pos < len(e.src) && IsIdentChar(e.src[e.pos]) {
			e.pos++
		}
		switch e.src[start:e.pos] {
		case "true":
			return literal{kind: literalBool, bool: true}, true
		case "false":
			return literal{kind: literalBool}, true
		}
	}
	return literal{}, false
}

func (e *literalEval) number() (literal, bool) {
	start := e.pos
	if e.src[e.pos] == '-' {
		e.pos++
	}
	for e.pos < len(e.src) {
		c := e.src[e.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '_' || c == 'e' || c == 'E' ||
			((c == '+' || c == '-') && (e.src[e.pos-1] == 'e' || e.src[e.pos-1] == 'E')) {
			e.pos++
			continue
		}
		break
	}
	text := strings.ReplaceAll(e.src[start:e.pos], "_", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return literal{}, false
	}
	return literal{kind: literalNumber, num: f}, true
}

func (e *literalEval) str(quote byte) (literal, bool) {
	var sb strings.Builder
	e.pos++
	for e.pos < len(e.src) {
		c := e.src[e.pos]
		switch {
		case c == quote:
			e.pos++
			return literal{kind: literalString, str: sb.String()}, true
		case c == '\\' && e.pos+1 < len(e.src):
			e.pos++
			sb.WriteString(unescapeChar(e.src[e.pos]))
		case quote == '`' && isExprStart(e.src, e.pos):
			return literal{}, false
		case c == '\n' && quote != '`':
			return literal{}, false
		default:
			sb.WriteByte(c)
		}
		e.pos++
	}
	return literal{}, false
}

func unescapeChar(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	case '\n':
		return ""
	default:
		return string(c)
	}
}
