package bindgen

import "strings"

// Element is a markup element with byte offsets into the template text.
// The offsets satisfy TagStart <= TagNameEnd <= OpenTagEnd <= CloseTagStart
// <= CloseTagEnd. Void and self-closing elements have CloseTagStart ==
// CloseTagEnd == OpenTagEnd and never own children.
type Element struct {
	TagName       string // as written in the source
	TagStart      int    // offset of '<'
	TagNameEnd    int    // offset just past the tag name
	OpenTagEnd    int    // offset just past the '>' of the open tag
	CloseTagStart int    // offset of "</", or of the implicit close
	CloseTagEnd   int    // offset just past the closing '>'

	Attrs    []*Attribute // in source order
	Children []*Element   // in document order
	Parent   *Element     // nil for the virtual root
	Text     []*TextNode  // literal text runs directly inside this element

	SelfClosing bool
	Void        bool
	Closed      bool // an explicit closing tag was matched

	// Directive is the conditional-element directive carried by the open
	// tag, if any.
	Directive *Directive
}

// IsRoot reports whether e is the virtual root of a parsed template.
func (e *Element) IsRoot() bool {
	return e.Parent == nil && e.TagName == ""
}

// Attr returns the attribute with the given name (case-insensitive), or nil.
func (e *Element) Attr(name string) *Attribute {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// Contains reports whether the offset lies within the element's source span.
func (e *Element) Contains(offset int) bool {
	return offset >= e.TagStart && offset < e.CloseTagEnd
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// SoleContent reports whether the span [start, end) is the only
// non-whitespace content of e: e has no child elements and every text run
// outside the span is whitespace.
func (e *Element) SoleContent(src string, start, end int) bool {
	if e.IsRoot() || len(e.Children) > 0 {
		return false
	}
	for _, t := range e.Text {
		before := ""
		after := ""
		switch {
		case t.End <= start || t.Start >= end:
			before = t.Content
		default:
			before = src[t.Start:max(t.Start, start)]
			after = src[min(t.End, end):t.End]
		}
		if strings.TrimSpace(before) != "" || strings.TrimSpace(after) != "" {
			return false
		}
	}
	return true
}

// Attribute is a single attribute of an open tag.
type Attribute struct {
	Name       string
	Value      string // raw value text, expressions included verbatim
	Start      int    // offset of the attribute name (or opening quote if unnamed)
	End        int    // offset just past the value (closing quote included)
	ValueStart int    // offset of the first value character
	ValueEnd   int    // offset just past the last value character
	Quote      byte   // '"' or '\'' for quoted values, 0 otherwise
	HasValue   bool   // false for boolean attributes
}

// TextNode is a maximal run of literal text between tags.
type TextNode struct {
	Content string
	Start   int
	End     int
	Parent  *Element
}

// Directive is a conditional-element directive: an attribute whose quoted
// value is exactly ${when(<condition>)}.
type Directive struct {
	Condition      string
	ConditionStart int
	ConditionEnd   int
	Start          int // span of the whole attribute, quotes included
	End            int
}

// ParsedTemplate is the result of parsing one template.
type ParsedTemplate struct {
	Text        string
	Root        *Element   // virtual root spanning the whole text
	Roots       []*Element // top-level elements, same as Root.Children
	Bindings    []*Binding // filled by Classify, in first-appearance order
	Diagnostics DiagnosticList
	filename    string
}

// Elements returns every real element in document order.
func (t *ParsedTemplate) Elements() []*Element {
	var out []*Element
	t.Root.Walk(func(e *Element) bool {
		if !e.IsRoot() {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Position converts an offset in the template text into a Position.
func (t *ParsedTemplate) Position(offset int) Position {
	return PositionAt(t.filename, t.Text, offset)
}
