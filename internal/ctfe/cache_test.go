package ctfe

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"golang.org/x/sync/errgroup"
)

func TestCache_GetInvalidateClear(t *testing.T) {
	fsys := fstest.MapFS{
		"a.ts": {Data: []byte("export const A = defineComponent('x-a', {});")},
		"b.ts": {Data: []byte("export const B = defineComponent('x-b', {});")},
	}
	c := NewCache()

	first, err := c.Get(fsys, "a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}

	fsys["a.ts"] = &fstest.MapFile{Data: []byte("export const A = defineComponent('x-changed', {});")}
	cached, _ := c.Get(fsys, "a.ts")
	if cached != first {
		t.Error("second Get did not return the cached module")
	}

	c.Invalidate("a.ts")
	if c.Len() != 0 {
		t.Fatalf("Len after Invalidate = %d, want 0", c.Len())
	}
	fresh, err := c.Get(fsys, "a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if tag, _ := fresh.Tag("A"); tag != "x-changed" {
		t.Errorf("Tag after Invalidate = %q, want x-changed", tag)
	}

	if _, err := c.Get(fsys, "b.ts"); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestCache_MissingFileIsNotCached(t *testing.T) {
	c := NewCache()
	_, err := c.Get(fstest.MapFS{}, "nope.ts")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	fsys := archiveFS(t, modules)
	c := NewCache()

	got := make([]*Module, 16)
	var g errgroup.Group
	for i := range got {
		g.Go(func() error {
			m, err := c.Get(fsys, "src/button.ts")
			got[i] = m
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, m := range got {
		if m != got[0] {
			t.Fatalf("goroutine %d got a different module", i)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCache_OutputIndependentOfState(t *testing.T) {
	fsys := archiveFS(t, modules)
	src := "import { Button } from './button';\nhtml`${Button({ label: 'x' })}`;\n" +
		"const r = { path: '/', load: () => import('./pages/home') };"

	cold, _ := EvaluateText(src, Options{Filename: "src/app.ts", FS: fsys})

	shared := NewCache()
	warm1, _ := EvaluateText(src, Options{Filename: "src/app.ts", FS: fsys, Cache: shared})
	warm2, _ := EvaluateText(src, Options{Filename: "src/app.ts", FS: fsys, Cache: shared})
	if shared.Len() != 2 {
		t.Errorf("shared cache holds %d modules, want 2", shared.Len())
	}
	shared.Clear()
	cleared, _ := EvaluateText(src, Options{Filename: "src/app.ts", FS: fsys, Cache: shared})

	for name, got := range map[string]string{"warm": warm1, "warm again": warm2, "cleared": cleared} {
		if got != cold {
			t.Errorf("%s output differs:\n%s\nwant\n%s", name, got, cold)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Register(Descriptor{Tag: "x-b", Module: "b.ts", Export: "B"}); !ok {
		t.Fatal("first registration rejected")
	}
	if _, ok := r.Register(Descriptor{Tag: "x-a", Module: "a.ts", Export: "A"}); !ok {
		t.Fatal("second tag rejected")
	}
	if _, ok := r.Register(Descriptor{Tag: "x-b", Module: "b.ts", Export: "B"}); !ok {
		t.Error("re-registration by the same module rejected")
	}
	prev, ok := r.Register(Descriptor{Tag: "x-b", Module: "other.ts"})
	if ok || prev.Module != "b.ts" {
		t.Errorf("conflicting registration = %+v, %v", prev, ok)
	}

	if got := r.Tags(); len(got) != 2 || got[0] != "x-a" || got[1] != "x-b" {
		t.Errorf("Tags = %v", got)
	}

	r.Remove("b.ts")
	if _, ok := r.Lookup("x-b"); ok {
		t.Error("x-b still registered after Remove")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}
