package ctfe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseModule(t *testing.T) {
	type tc struct {
		src  string
		want []Definition
	}

	tests := map[string]tc{
		"exported defineComponent": {
			src:  "export const Button = defineComponent('x-button', {});",
			want: []Definition{{Export: "Button", Tag: "x-button"}},
		},
		"default defineComponent": {
			src:  `export default defineComponent("app-home", {});`,
			want: []Definition{{Export: "default", Tag: "app-home"}},
		},
		"customElements.define with a class": {
			src:  "class Card extends HTMLElement {}\ncustomElements.define('x-card', Card);",
			want: []Definition{{Export: "Card", Tag: "x-card"}},
		},
		"customElements.define with an inline class": {
			src:  "customElements.define('x-anon', class extends HTMLElement {});",
			want: []Definition{{Tag: "x-anon"}},
		},
		"static tagName": {
			src:  "export class Page {\n  static tagName = 'app-page';\n}",
			want: []Definition{{Export: "Page", Tag: "app-page"}},
		},
		"static tagName on a default class": {
			src:  "export default class Shell { static tagName = 'app-shell' }",
			want: []Definition{{Export: "default", Tag: "app-shell"}},
		},
		"descriptor object": {
			src:  "export const meta = { selector: 'x-meta' };",
			want: []Definition{{Tag: "x-meta"}},
		},
		"tag without a hyphen": {
			src: "export const B = defineComponent('button', {});",
		},
		"commented registration": {
			src:  "// defineComponent('x-old', {})\nexport const A = defineComponent('x-new', {});",
			want: []Definition{{Export: "A", Tag: "x-new"}},
		},
		"two components": {
			src: "export const A = defineComponent('x-a', {});\nexport const B = defineComponent('x-b', {});",
			want: []Definition{
				{Export: "A", Tag: "x-a"},
				{Export: "B", Tag: "x-b"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := ParseModule("m.ts", tt.src)
			if diff := cmp.Diff(tt.want, m.Definitions, cmpopts.IgnoreFields(Definition{}, "Offset"), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("definitions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModule_Tag(t *testing.T) {
	multi := ParseModule("m.ts", "export const Button = defineComponent('x-button', {});\nexport const Icon = defineComponent('x-icon', {});")
	if tag, ok := multi.Tag("Icon"); !ok || tag != "x-icon" {
		t.Errorf("Tag(Icon) = %q, %v", tag, ok)
	}
	if _, ok := multi.Tag("default"); ok {
		t.Error("Tag(default) resolved in a module with two tags")
	}

	single := ParseModule("m.ts", "export default defineComponent('app-home', {});")
	if tag, ok := single.Tag("HomePage"); !ok || tag != "app-home" {
		t.Errorf("Tag(HomePage) = %q, %v", tag, ok)
	}

	var none *Module
	if _, ok := none.Tag("X"); ok {
		t.Error("nil module resolved a tag")
	}
}

func TestValidTag(t *testing.T) {
	for tag, want := range map[string]bool{
		"x-button":    true,
		"app-home":    true,
		"my-el.v2":    true,
		"button":      false,
		"X-Button":    false,
		"-x":          false,
		"1-x":         false,
		"<x-a></x-a>": false,
	} {
		if got := ValidTag(tag); got != want {
			t.Errorf("ValidTag(%q) = %v, want %v", tag, got, want)
		}
	}
}

func TestParseImports(t *testing.T) {
	src := "import { signal } from 'bindc/runtime';\n" +
		"import Button, { Icon as Glyph, type Props } from './button';\n" +
		"import * as all from './all';\n" +
		"import type { T } from './t';\n" +
		"// import Old from './old';\n" +
		"import {\n  Card,\n} from \"../card.js\";\n" +
		"import './styles.css';\n"

	want := []Import{
		{Local: "signal", Imported: "signal", Spec: "bindc/runtime"},
		{Local: "Button", Imported: "default", Spec: "./button"},
		{Local: "Glyph", Imported: "Icon", Spec: "./button"},
		{Local: "Card", Imported: "Card", Spec: "../card.js"},
	}
	got := ParseImports(src)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Import{}, "Offset")); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidates(t *testing.T) {
	type tc struct {
		from string
		spec string
		want []string
	}

	tests := map[string]tc{
		"extensionless": {
			from: "src/app.ts",
			spec: "./button",
			want: []string{"src/button.ts", "src/button.js", "src/button/index.ts", "src/button/index.js"},
		},
		"js extension falls back to ts": {
			from: "src/pages/a.ts",
			spec: "../card.js",
			want: []string{"src/card.js", "src/card.ts"},
		},
		"ts extension": {
			from: "app.ts",
			spec: "./x.ts",
			want: []string{"x.ts"},
		},
		"absolute importer": {
			from: "/abs/app.ts",
			spec: "./b.ts",
			want: []string{"abs/b.ts"},
		},
		"bare specifier": {
			from: "app.ts",
			spec: "bindc/runtime",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Candidates(tt.from, tt.spec)); diff != "" {
				t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttrName(t *testing.T) {
	for key, want := range map[string]string{
		"label":     "label",
		"maxCount":  "max-count",
		"ariaLabel": "aria-label",
		"@click":    "@click",
		"data-x":    "data-x",
	} {
		if got := AttrName(key); got != want {
			t.Errorf("AttrName(%q) = %q, want %q", key, got, want)
		}
	}
}
