package ctfe

import (
	"testing"

	"github.com/grindlemire/go-bindc/internal/bindgen"
)

func TestEvaluate(t *testing.T) {
	type tc struct {
		src        string
		want       string
		components int
		routes     int
		warnings   int
	}

	tests := map[string]tc{
		"markup call with props": {
			src:        "import { Button } from './button';\nconst t = html`<div>${Button({ label: \"Save\", maxCount: 3, disabled: true, hidden: false, value: this.v() })}</div>`;",
			want:       "import { Button } from './button';\nconst t = html`<div><x-button label=\"Save\" max-count=\"3\" disabled value=\"${this.v()}\"></x-button></div>`;",
			components: 1,
		},
		"markup call without props": {
			src:        "import { Button } from './button';\nhtml`${Button()}`;",
			want:       "import { Button } from './button';\nhtml`<x-button></x-button>`;",
			components: 1,
		},
		"shorthand prop": {
			src:        "import { Button } from './button';\nhtml`${Button({ label })}`;",
			want:       "import { Button } from './button';\nhtml`<x-button label=\"${label}\"></x-button>`;",
			components: 1,
		},
		"quoted event key": {
			src:        "import { Button } from './button';\nhtml`${Button({ '@click': () => this.save() })}`;",
			want:       "import { Button } from './button';\nhtml`<x-button @click=\"${() => this.save()}\"></x-button>`;",
			components: 1,
		},
		"escaped static value": {
			src:        "import { Button } from './button';\nhtml`${Button({ label: 'a<b' })}`;",
			want:       "import { Button } from './button';\nhtml`<x-button label=\"a&lt;b\"></x-button>`;",
			components: 1,
		},
		"call outside markup": {
			src:        "import { Button } from './button';\nconst el = Button({ label: 'Hi' });",
			want:       "import { Button } from './button';\nconst el = `<x-button label=\"Hi\"></x-button>`;",
			components: 1,
		},
		"call inside a larger expression": {
			src:        "import { Button } from './button';\nhtml`${cond ? Button() : ''}`;",
			want:       "import { Button } from './button';\nhtml`${cond ? `<x-button></x-button>` : ''}`;",
			components: 1,
		},
		"renamed default import": {
			src:        "import Home from './pages/home';\nhtml`${Home()}`;",
			want:       "import Home from './pages/home';\nhtml`<app-home></app-home>`;",
			components: 1,
		},
		"spread props are skipped": {
			src:      "import { Button } from './button';\nhtml`${Button({ ...rest })}`;",
			want:     "import { Button } from './button';\nhtml`${Button({ ...rest })}`;",
			warnings: 1,
		},
		"extra arguments are skipped": {
			src:      "import { Button } from './button';\nhtml`${Button({}, 1)}`;",
			want:     "import { Button } from './button';\nhtml`${Button({}, 1)}`;",
			warnings: 1,
		},
		"missing module": {
			src:      "import { Missing } from './missing';\nhtml`${Missing()}`;",
			want:     "import { Missing } from './missing';\nhtml`${Missing()}`;",
			warnings: 1,
		},
		"module without a tag": {
			src:      "import { Format } from './util';\nconst s = Format(1);",
			want:     "import { Format } from './util';\nconst s = Format(1);",
			warnings: 1,
		},
		"bare import is not resolved": {
			src:  "import { Widget } from 'lib';\nWidget();",
			want: "import { Widget } from 'lib';\nWidget();",
		},
		"construction and member calls": {
			src:  "import { Button } from './button';\nconst b = new Button(); x.Button();",
			want: "import { Button } from './button';\nconst b = new Button(); x.Button();",
		},
		"call in a comment": {
			src:  "import { Button } from './button';\n// Button()\n",
			want: "import { Button } from './button';\n// Button()\n",
		},
		"routes": {
			src: "const routes = [\n" +
				"  { path: '/', loadComponent: () => import('./pages/home') },\n" +
				"  { path: '/about', loadComponent: () => import('./pages/about.js').then(m => m.AboutPage) },\n" +
				"];",
			want: "const routes = [\n" +
				"  { selector: '<app-home></app-home>', path: '/', loadComponent: () => import('./pages/home') },\n" +
				"  { selector: '<app-about></app-about>', path: '/about', loadComponent: () => import('./pages/about.js').then(m => m.AboutPage) },\n" +
				"];",
			routes: 2,
		},
		"route with a block body": {
			src:    "const r = { path: '/', load: () => { return import('./pages/home'); } };",
			want:   "const r = { selector: '<app-home></app-home>', path: '/', load: () => { return import('./pages/home'); } };",
			routes: 1,
		},
		"route with a selector": {
			src:  "const r = { selector: '<app-home></app-home>', path: '/', loadComponent: () => import('./pages/home') };",
			want: "const r = { selector: '<app-home></app-home>', path: '/', loadComponent: () => import('./pages/home') };",
		},
		"route with a computed import": {
			src:      "const r = { path: '/x', loadComponent: () => import(page) };",
			want:     "const r = { path: '/x', loadComponent: () => import(page) };",
			warnings: 1,
		},
		"object without a path": {
			src:  "const r = { loadComponent: () => import('./pages/home') };",
			want: "const r = { loadComponent: () => import('./pages/home') };",
		},
		"child routes": {
			src:    "const r = { path: '/', children: [{ path: 'a', load: () => import('./pages/home') }] };",
			want:   "const r = { path: '/', children: [{ selector: '<app-home></app-home>', path: 'a', load: () => import('./pages/home') }] };",
			routes: 1,
		},
	}

	fsys := archiveFS(t, modules)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, res := EvaluateText(tt.src, Options{Filename: "src/app.ts", FS: fsys})
			if got != tt.want {
				t.Errorf("EvaluateText =\n%s\nwant\n%s", got, tt.want)
			}
			if res.Components != tt.components {
				t.Errorf("Components = %d, want %d", res.Components, tt.components)
			}
			if res.Routes != tt.routes {
				t.Errorf("Routes = %d, want %d", res.Routes, tt.routes)
			}
			if n := res.Diagnostics.Count(bindgen.SeverityWarning); n != tt.warnings {
				t.Errorf("warnings = %d, want %d: %v", n, tt.warnings, res.Diagnostics.Items())
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	fsys := archiveFS(t, modules)
	src := "import { Button } from './button';\n" +
		"const t = html`${Button({ label: 'x' })}`;\n" +
		"const r = [{ path: '/', loadComponent: () => import('./pages/home') }];"

	once, _ := EvaluateText(src, Options{Filename: "src/app.ts", FS: fsys})
	twice, res := EvaluateText(once, Options{Filename: "src/app.ts", FS: fsys})
	if res.Changed() {
		t.Errorf("second evaluation changed the source:\n%s", twice)
	}
	if res.Diagnostics.Count(bindgen.SeverityWarning) != 0 {
		t.Errorf("second evaluation warned: %v", res.Diagnostics.Items())
	}
}

func TestEvaluate_DuplicateTag(t *testing.T) {
	fsys := archiveFS(t, modules)
	reg := NewRegistry()
	src := "import { A } from './a';\nimport { B } from './b';\nhtml`${A()}${B()}`;"

	got, res := EvaluateText(src, Options{Filename: "src/app.ts", FS: fsys, Registry: reg})
	want := "import { A } from './a';\nimport { B } from './b';\nhtml`<x-dup></x-dup><x-dup></x-dup>`;"
	if got != want {
		t.Errorf("EvaluateText =\n%s\nwant\n%s", got, want)
	}
	if n := res.Diagnostics.Count(bindgen.SeverityWarning); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
	d, ok := reg.Lookup("x-dup")
	if !ok || d.Module != "src/a.ts" || d.Export != "A" {
		t.Errorf("Lookup(x-dup) = %+v, %v", d, ok)
	}
}

func TestEvaluate_DiagnosticPosition(t *testing.T) {
	fsys := archiveFS(t, modules)
	src := "import { Missing } from './missing';\n\nhtml`${Missing()}`;"
	res := Evaluate(src, Options{Filename: "src/app.ts", FS: fsys})
	items := res.Diagnostics.Items()
	if len(items) != 1 {
		t.Fatalf("diagnostics = %v", items)
	}
	if pos := items[0].Pos; pos.File != "src/app.ts" || pos.Line != 3 || pos.Column != 8 {
		t.Errorf("position = %v, want src/app.ts:3:8", pos)
	}
}

func TestEvaluate_NoFS(t *testing.T) {
	res := Evaluate("import { Button } from './button';\nButton();", Options{Filename: "src/app.ts"})
	if res.Changed() || res.Diagnostics.Len() != 0 {
		t.Errorf("evaluation without a file system did something: %+v", res)
	}
}
