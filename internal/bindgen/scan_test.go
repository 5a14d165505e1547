package bindgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanExpr(t *testing.T) {
	type tc struct {
		input string
		want  int
	}

	tests := map[string]tc{
		"simple":                 {input: "${a}", want: 4},
		"nested braces":          {input: "${ {a:1} }x", want: 10},
		"brace in string":        {input: `${"}"}`, want: 6},
		"brace in single quotes": {input: `${'}'}rest`, want: 6},
		"template literal":       {input: "${`a}b`}", want: 8},
		"nested expression":      {input: "${`a${b}c`}", want: 11},
		"unterminated":           {input: "${a", want: -1},
		"unterminated literal":   {input: "${`abc}", want: -1},
		"not an expression":      {input: "{a}", want: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ScanExpr(tt.input, 0); got != tt.want {
				t.Errorf("ScanExpr(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	type tc struct {
		input string
		want  []string
		ok    bool
	}

	tests := map[string]tc{
		"empty":          {input: "()", want: nil, ok: true},
		"single":         {input: "(a)", want: []string{"a"}, ok: true},
		"three":          {input: "(a, b , c)", want: []string{"a", "b", "c"}, ok: true},
		"nested parens":  {input: "(f(a, b), c)", want: []string{"f(a, b)", "c"}, ok: true},
		"object":         {input: "({a: 1, b: 2})", want: []string{"{a: 1, b: 2}"}, ok: true},
		"trailing comma": {input: "(a, b,)", want: []string{"a", "b"}, ok: true},
		"comma in string": {
			input: `("a,b", c)`,
			want:  []string{`"a,b"`, "c"},
			ok:    true,
		},
		"template literal with paren": {
			input: "(x, html`<p>)${this.a()}</p>`, html`b`)",
			want:  []string{"x", "html`<p>)${this.a()}</p>`", "html`b`"},
			ok:    true,
		},
		"unterminated": {input: "(a, b", ok: false},
		"mismatched":   {input: "(a]", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			args, end, ok := SplitArgs(tt.input, 0)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if end != len(tt.input) {
				t.Errorf("end = %d, want %d", end, len(tt.input))
			}
			var got []string
			for _, a := range args {
				got = append(got, a.Text(tt.input))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	type tc struct {
		input string
		want  []string
		ok    bool
	}

	tests := map[string]tc{
		"object entries": {input: "{ a: 1, 'b': f(x, y), c }", want: []string{"a: 1", "'b': f(x, y)", "c"}, ok: true},
		"array items":    {input: "[1, [2, 3]]", want: []string{"1", "[2, 3]"}, ok: true},
		"empty object":   {input: "{}", ok: true},
		"mismatched":     {input: "{a: 1]", ok: false},
		"not a list":     {input: "a", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			items, end, ok := SplitList(tt.input, 0)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if end != len(tt.input) {
				t.Errorf("end = %d, want %d", end, len(tt.input))
			}
			var got []string
			for _, s := range items {
				got = append(got, s.Text(tt.input))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTemplateLiteralContent(t *testing.T) {
	type tc struct {
		input string
		want  string
		ok    bool
	}

	tests := map[string]tc{
		"tagged":       {input: "html`<b>x</b>`", want: "<b>x</b>", ok: true},
		"untagged":     {input: "`abc`", want: "abc", ok: true},
		"parenthesized": {input: "( html`a` )", want: "a", ok: true},
		"nested":       {input: "html`a${html`b`}c`", want: "a${html`b`}c", ok: true},
		"trailing code": {input: "html`a` + x", ok: false},
		"not a literal": {input: "'a'", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			span, ok := TemplateLiteralContent(tt.input, Span{0, len(tt.input)})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && span.Text(tt.input) != tt.want {
				t.Errorf("content = %q, want %q", span.Text(tt.input), tt.want)
			}
		})
	}
}

func TestParseArrow(t *testing.T) {
	type tc struct {
		input  string
		params []string
		body   string
		ok     bool
	}

	tests := map[string]tc{
		"bare param":   {input: "item => html`<li></li>`", params: []string{"item"}, body: "html`<li></li>`", ok: true},
		"two params":   {input: "(item, i) => html`x`", params: []string{"item", "i"}, body: "html`x`", ok: true},
		"no params":    {input: "() => 1", body: "1", ok: true},
		"arrow inside": {input: "(t) => html`${() => 1}`", params: []string{"t"}, body: "html`${() => 1}`", ok: true},
		"not an arrow": {input: "this.items()", ok: false},
		"empty body":   {input: "x =>", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fn, ok := ParseArrow(tt.input, Span{0, len(tt.input)})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.params, fn.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
			if got := fn.Body.Text(tt.input); got != tt.body {
				t.Errorf("body = %q, want %q", got, tt.body)
			}
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	type tc struct {
		in   string
		want bool
	}

	tests := map[string]tc{
		"plain":         {in: "count", want: true},
		"dollar":        {in: "$el", want: true},
		"underscore":    {in: "_x1", want: true},
		"leading digit": {in: "1x", want: false},
		"dash":          {in: "a-b", want: false},
		"dot":           {in: "a.b", want: false},
		"empty":         {in: "", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := IsIdentifier(tt.in); got != tt.want {
				t.Errorf("IsIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, c := range []byte("aZ09_$") {
		if !IsIdentChar(c) {
			t.Errorf("IsIdentChar(%q) = false", c)
		}
	}
	for _, c := range []byte("-. `{") {
		if IsIdentChar(c) {
			t.Errorf("IsIdentChar(%q) = true", c)
		}
	}
}
