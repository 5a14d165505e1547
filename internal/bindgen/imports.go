package bindgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grindlemire/go-bindc/internal/edit"
)

// DefaultRuntimeModule is the module that provides the binding primitives.
const DefaultRuntimeModule = "bindc/runtime"

// importStmtRegex matches a whole import statement, including multi-line
// named import lists and side-effect imports.
var importStmtRegex = regexp.MustCompile(`(?m)^[ \t]*import\b(?:[^;'"` + "`" + `]*?\bfrom\s*)?\s*['"][^'"\n]+['"][ \t]*;?`)

// RewireImports returns the edits that make src import every name in
// prims from module. Names already imported are not duplicated. An existing
// named import of module is extended in place; otherwise a new import is
// inserted after the last import statement, or at the top of the file.
// Import-like text inside comments and template literals is ignored.
func RewireImports(src, module string, prims []string) []edit.Edit {
	if len(prims) == 0 {
		return nil
	}
	if module == "" {
		module = DefaultRuntimeModule
	}

	code := codeOnly(src)
	named := regexp.MustCompile(`import\s*\{([^}]*)\}\s*from\s*(['"])` + regexp.QuoteMeta(module) + `['"]`)
	if m := named.FindStringSubmatchIndex(code); m != nil {
		existing := importedNames(code[m[2]:m[3]])
		var entries []string
		for _, part := range strings.Split(src[m[2]:m[3]], ",") {
			if p := strings.Join(strings.Fields(part), " "); p != "" {
				entries = append(entries, p)
			}
		}
		added := false
		for _, p := range prims {
			if !existing[p] {
				entries = append(entries, p)
				added = true
			}
		}
		if !added {
			return nil
		}
		return []edit.Edit{edit.Replace(m[2], m[3], " "+strings.Join(entries, ", ")+" ")}
	}

	stmt := fmt.Sprintf("import { %s } from '%s';", strings.Join(prims, ", "), module)
	last := importStmtRegex.FindAllStringIndex(code, -1)
	if len(last) == 0 {
		return []edit.Edit{edit.Insert(0, stmt+"\n")}
	}
	return []edit.Edit{edit.Insert(last[len(last)-1][1], "\n"+stmt)}
}

// codeOnly returns src with comments and template literals blanked to
// spaces. Newlines and offsets are kept.
func codeOnly(src string) string {
	b := []byte(src)
	blank := func(start, end int) {
		for j := start; j < end; j++ {
			if b[j] != '\n' {
				b[j] = ' '
			}
		}
	}
	for i := 0; i < len(src); {
		switch src[i] {
		case '"', '\'':
			i = SkipQuoted(src, i)
			continue
		case '`':
			end := SkipTemplateLiteral(src, i)
			if end < 0 {
				end = len(src)
			}
			blank(i, end)
			i = end
			continue
		case '/':
			if end := SkipComment(src, i); end > i {
				blank(i, end)
				i = end
				continue
			}
		}
		i++
	}
	return string(b)
}

// importedNames returns the local names of a named import list. For
// "a as b" the imported name a is what matters.
func importedNames(list string) map[string]bool {
	names := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "type" && len(fields) > 1 {
			continue
		}
		names[fields[0]] = true
	}
	return names
}

// RewireImportsText applies RewireImports to src.
func RewireImportsText(src, module string, prims []string) string {
	return edit.Apply(src, RewireImports(src, module, prims))
}
