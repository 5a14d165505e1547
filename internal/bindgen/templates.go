package bindgen

// TemplateLiteral locates a tagged template literal in script source.
type TemplateLiteral struct {
	Tag     string
	Start   int  // offset of the tag
	End     int  // offset just past the closing backtick
	Content Span // between the backticks
}

// Text returns the literal's content.
func (t TemplateLiteral) Text(src string) string {
	return t.Content.Text(src)
}

// DefaultTemplateTag is the tag that marks templates to compile.
const DefaultTemplateTag = "html"

// FindTemplates returns every top-level template literal tagged with tag in
// script source, in source order. Strings and comments are skipped, as are
// templates nested inside another template literal; those are compiled as
// sub-templates of their parent.
func FindTemplates(src, tag string) []TemplateLiteral {
	if tag == "" {
		tag = DefaultTemplateTag
	}
	var out []TemplateLiteral
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			i = SkipQuoted(src, i)
			continue
		case c == '/':
			if next := SkipComment(src, i); next != i {
				i = next
				continue
			}
		case c == '`':
			end := SkipTemplateLiteral(src, i)
			if end < 0 {
				return out
			}
			i = end
			continue
		case IsIdentChar(c) && (i == 0 || !IsIdentChar(src[i-1])):
			start := i
			for i < len(src) && IsIdentChar(src[i]) {
				i++
			}
			if src[start:i] != tag || (start > 0 && src[start-1] == '.') {
				continue
			}
			j := i
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			if j >= len(src) || src[j] != '`' {
				continue
			}
			end := SkipTemplateLiteral(src, j)
			if end < 0 {
				return out
			}
			out = append(out, TemplateLiteral{
				Tag:     tag,
				Start:   start,
				End:     end,
				Content: Span{j + 1, end - 1},
			})
			i = end
			continue
		}
		i++
	}
	return out
}
