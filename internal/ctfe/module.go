package ctfe

import (
	"regexp"
	"sort"
	"strings"

	"github.com/grindlemire/go-bindc/internal/bindgen"
)

// Definition is one tag registration found in a module.
type Definition struct {
	// Export is the name the registered value is bound to, "default" for a
	// default export, or empty when the registration is anonymous.
	Export string
	Tag    string
	Offset int
}

// Module is the statically known content of a component or page module.
type Module struct {
	Path        string
	Definitions []Definition
}

var (
	// export const Button = defineComponent('x-button', ...)
	defineComponentRegex = regexp.MustCompile(`(?:(export\s+default)\s+|(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*)?\bdefineComponent\s*\(\s*['"` + "`" + `]([^'"` + "`" + `\s]+)['"` + "`" + `]`)

	// customElements.define('x-button', Button)
	customElementsRegex = regexp.MustCompile(`\bcustomElements\s*\.\s*define\s*\(\s*['"` + "`" + `]([^'"` + "`" + `\s]+)['"` + "`" + `]\s*(?:,\s*([A-Za-z_$][\w$]*))?`)

	// static tagName = 'x-button' or { selector: 'x-button' }
	tagFieldRegex = regexp.MustCompile(`\b(?:tagName|selector)\s*[:=]\s*['"` + "`" + `]([^'"` + "`" + `\s<>]+)['"` + "`" + `]`)

	classRegex = regexp.MustCompile(`\b(?:(export\s+default)\s+|(?:export\s+))?class\s+([A-Za-z_$][\w$]*)`)

	// Custom element names are lowercase and contain a hyphen.
	validTagRegex = regexp.MustCompile(`^[a-z][a-z0-9._]*-[a-z0-9._-]*$`)
)

// ValidTag reports whether tag is a valid custom element name.
func ValidTag(tag string) bool {
	return validTagRegex.MatchString(tag)
}

// ParseModule extracts the tag registrations of a module. Registrations
// inside comments are ignored, as are names that are not valid custom
// element names.
func ParseModule(path, src string) *Module {
	code := blankComments(src)
	m := &Module{Path: path}

	for _, g := range defineComponentRegex.FindAllStringSubmatchIndex(code, -1) {
		export := ""
		switch {
		case g[2] >= 0:
			export = "default"
		case g[4] >= 0:
			export = code[g[4]:g[5]]
		}
		m.add(export, code[g[6]:g[7]], g[6])
	}

	for _, g := range customElementsRegex.FindAllStringSubmatchIndex(code, -1) {
		export := ""
		if g[4] >= 0 && code[g[4]:g[5]] != "class" {
			export = code[g[4]:g[5]]
		}
		m.add(export, code[g[2]:g[3]], g[2])
	}

	classes := classRegex.FindAllStringSubmatchIndex(code, -1)
	for _, g := range tagFieldRegex.FindAllStringSubmatchIndex(code, -1) {
		m.add(enclosingClass(code, classes, g[0]), code[g[2]:g[3]], g[2])
	}

	sort.SliceStable(m.Definitions, func(i, j int) bool {
		return m.Definitions[i].Offset < m.Definitions[j].Offset
	})
	return m
}

func (m *Module) add(export, tag string, offset int) {
	if !ValidTag(tag) {
		return
	}
	for _, d := range m.Definitions {
		if d.Tag == tag && d.Export == export {
			return
		}
	}
	m.Definitions = append(m.Definitions, Definition{Export: export, Tag: tag, Offset: offset})
}

// enclosingClass names the closest class declared before offset, so a
// static tagName field is attributed to its class. Object descriptors
// outside any class are anonymous.
func enclosingClass(code string, classes [][]int, offset int) string {
	name := ""
	for _, g := range classes {
		if g[0] > offset {
			break
		}
		open := strings.IndexByte(code[g[1]:], '{')
		if open < 0 {
			continue
		}
		_, end, ok := bindgen.SplitList(code, g[1]+open)
		if !ok || end < offset {
			continue
		}
		if g[2] >= 0 {
			name = "default"
		} else {
			name = code[g[4]:g[5]]
		}
	}
	return name
}

// Tag returns the tag registered for export. When the module registers a
// single distinct tag, that tag is used for any export, which covers
// default and anonymous registrations.
func (m *Module) Tag(export string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, d := range m.Definitions {
		if d.Export == export && export != "" {
			return d.Tag, true
		}
	}
	tags := m.Tags()
	if len(tags) == 1 {
		return tags[0], true
	}
	return "", false
}

// Tags returns the distinct tags the module registers, in source order.
func (m *Module) Tags() []string {
	var tags []string
	seen := make(map[string]bool)
	for _, d := range m.Definitions {
		if !seen[d.Tag] {
			seen[d.Tag] = true
			tags = append(tags, d.Tag)
		}
	}
	return tags
}

// blankComments replaces the content of comments with spaces, keeping
// offsets and newlines intact. Strings are left as they are.
func blankComments(src string) string {
	var b []byte
	i := 0
	for i < len(src) {
		switch src[i] {
		case '"', '\'':
			i = bindgen.SkipQuoted(src, i)
			continue
		case '`':
			end := bindgen.SkipTemplateLiteral(src, i)
			if end < 0 {
				i = len(src)
				continue
			}
			i = end
			continue
		case '/':
			end := bindgen.SkipComment(src, i)
			if end == i {
				break
			}
			if b == nil {
				b = []byte(src)
			}
			for j := i; j < end; j++ {
				if b[j] != '\n' {
					b[j] = ' '
				}
			}
			i = end
			continue
		}
		i++
	}
	if b == nil {
		return src
	}
	return string(b)
}
