package bindgen

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements never have a closing tag or content.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// rawTextElements hold a single opaque text run; no tags are recognized
// inside them.
var rawTextElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Textarea: true,
	atom.Title:    true,
}

func lookupTag(tag string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(tag)))
}

// IsVoidElement reports whether tag is an HTML void element.
func IsVoidElement(tag string) bool {
	return voidElements[lookupTag(tag)]
}

func isRawTextElement(tag string) bool {
	return rawTextElements[lookupTag(tag)]
}
