package ctfe

import (
	"testing"
	"testing/fstest"

	"golang.org/x/tools/txtar"
)

// archiveFS loads a txtar archive into an in-memory file system.
func archiveFS(t *testing.T, data string) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, f := range txtar.Parse([]byte(data)).Files {
		fsys[f.Name] = &fstest.MapFile{Data: f.Data}
	}
	return fsys
}

const modules = `
-- src/button.ts --
export const Button = defineComponent('x-button', { render() {} });
-- src/pages/home.ts --
export default defineComponent('app-home', {});
-- src/pages/about.ts --
export class AboutPage {
  static tagName = 'app-about';
}
-- src/util.ts --
export function Format(x) { return x; }
-- src/a.ts --
export const A = defineComponent('x-dup', {});
-- src/b.ts --
export const B = defineComponent('x-dup', {});
`
