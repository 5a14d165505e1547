package ctfe

import (
	"path"
	"regexp"
	"strings"

	"github.com/grindlemire/go-bindc/internal/bindgen"
)

// Import is one name bound by a static import statement.
type Import struct {
	Local    string // name in the importing module
	Imported string // exported name, "default" for a default import
	Spec     string
	Offset   int
}

var importClauseRegex = regexp.MustCompile(`(?m)^[ \t]*import\s+(type\s+)?([^;'"` + "`" + `]*?)\s*from\s*['"]([^'"\n]+)['"]`)

// ParseImports returns the names bound by the static imports of src, in
// source order. Namespace imports and type-only imports bind nothing
// callable and are skipped.
func ParseImports(src string) []Import {
	code := blankComments(src)
	var out []Import
	for _, g := range importClauseRegex.FindAllStringSubmatchIndex(code, -1) {
		if g[2] >= 0 {
			continue
		}
		clause := strings.TrimSpace(code[g[4]:g[5]])
		spec := code[g[6]:g[7]]
		add := func(local, imported string) {
			if bindgen.IsIdentifier(local) {
				out = append(out, Import{Local: local, Imported: imported, Spec: spec, Offset: g[0]})
			}
		}

		def, named := clause, ""
		if open := strings.IndexByte(clause, '{'); open >= 0 {
			def, named = clause[:open], clause[open+1:]
			if end := strings.IndexByte(named, '}'); end >= 0 {
				named = named[:end]
			}
		}
		def = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(def), ","))
		if def != "" && !strings.HasPrefix(def, "*") {
			add(def, "default")
		}
		for _, entry := range strings.Split(named, ",") {
			fields := strings.Fields(entry)
			switch {
			case len(fields) == 1:
				add(fields[0], fields[0])
			case len(fields) == 3 && fields[1] == "as":
				add(fields[2], fields[0])
			}
		}
	}
	return out
}

// Candidates returns the module paths a relative specifier may refer to
// when imported from the file from, in lookup order. Bare specifiers name
// packages outside the module tree and have no candidates.
func Candidates(from, spec string) []string {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return nil
	}
	base := strings.TrimPrefix(path.Join(path.Dir(from), spec), "/")
	switch ext := path.Ext(base); ext {
	case ".ts", ".tsx", ".mts":
		return []string{base}
	case ".js", ".mjs":
		return []string{base, strings.TrimSuffix(base, ext) + ".ts"}
	}
	return []string{base + ".ts", base + ".js", base + "/index.ts", base + "/index.js"}
}

// isComponentName reports whether an imported name follows the component
// naming convention of a leading capital letter.
func isComponentName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
