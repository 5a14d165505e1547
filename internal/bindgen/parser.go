package bindgen

import (
	"strings"
)

// state is a state of the template parser's state machine.
type state int

const (
	stateText state = iota
	stateTagOpen
	stateTagName
	stateTagSpace
	stateAttrName
	stateAttrEq
	stateAttrValueQuoted
	stateAttrValueUnquoted
	stateTagClose
	stateComment
)

var stateNames = [...]string{
	stateText:              "TEXT",
	stateTagOpen:           "TAG_OPEN",
	stateTagName:           "TAG_NAME",
	stateTagSpace:          "TAG_SPACE",
	stateAttrName:          "ATTR_NAME",
	stateAttrEq:            "ATTR_EQ",
	stateAttrValueQuoted:   "ATTR_VALUE_QUOTED",
	stateAttrValueUnquoted: "ATTR_VALUE_UNQUOTED",
	stateTagClose:          "TAG_CLOSE",
	stateComment:           "COMMENT",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// Parser walks template text one character at a time and builds the
// element tree. It never fails: malformed markup is recovered from and
// reported as info diagnostics.
type Parser struct {
	filename string
	src      string
	pos      int
	state    state

	root  *Element
	stack []*Element // open elements, innermost last

	textStart  int        // start of the pending text run, -1 if none
	cur        *Element   // element whose open tag is being read
	attr       *Attribute // attribute being read
	closeStart int        // offset of "</" for the closing tag being read

	diags DiagnosticList
}

// NewParser creates a Parser for the given template text. The filename is
// only used in diagnostics.
func NewParser(filename, text string) *Parser {
	return &Parser{
		filename:  filename,
		src:       text,
		textStart: -1,
	}
}

// Parse parses template text with no filename.
func Parse(text string) *ParsedTemplate {
	return NewParser("", text).Parse()
}

// Parse runs the state machine over the whole text.
func (p *Parser) Parse() *ParsedTemplate {
	p.root = &Element{
		TagStart:      0,
		TagNameEnd:    0,
		OpenTagEnd:    0,
		CloseTagStart: len(p.src),
		CloseTagEnd:   len(p.src),
		Closed:        true,
	}

	for p.pos < len(p.src) {
		switch p.state {
		case stateText:
			p.lexText()
		case stateTagOpen:
			p.lexTagOpen()
		case stateTagName:
			p.lexTagName()
		case stateTagSpace:
			p.lexTagSpace()
		case stateAttrName:
			p.lexAttrName()
		case stateAttrEq:
			p.lexAttrEq()
		case stateAttrValueQuoted:
			p.lexAttrValueQuoted()
		case stateAttrValueUnquoted:
			p.lexAttrValueUnquoted()
		case stateTagClose:
			p.lexTagClose()
		case stateComment:
			p.lexComment()
		}
	}
	p.finish()

	return &ParsedTemplate{
		Text:        p.src,
		Root:        p.root,
		Roots:       p.root.Children,
		Diagnostics: p.diags,
		filename:    p.filename,
	}
}

// position returns the Position of an offset for diagnostics.
func (p *Parser) position(offset int) Position {
	return PositionAt(p.filename, p.src, offset)
}

// top returns the innermost open element, or the virtual root.
func (p *Parser) top() *Element {
	if len(p.stack) == 0 {
		return p.root
	}
	return p.stack[len(p.stack)-1]
}

// peek returns the byte at pos+n, or 0 past the end.
func (p *Parser) peek(n int) byte {
	if p.pos+n < len(p.src) {
		return p.src[p.pos+n]
	}
	return 0
}

// markText starts a text run at the current position if none is pending.
func (p *Parser) markText() {
	if p.textStart < 0 {
		p.textStart = p.pos
	}
}

// flushText ends the pending text run at end and attaches it to the
// innermost open element.
func (p *Parser) flushText(end int) {
	if p.textStart < 0 {
		return
	}
	if end > p.textStart {
		owner := p.top()
		owner.Text = append(owner.Text, &TextNode{
			Content: p.src[p.textStart:end],
			Start:   p.textStart,
			End:     end,
			Parent:  owner,
		})
	}
	p.textStart = -1
}

// lexText handles literal text and embedded expressions.
func (p *Parser) lexText() {
	c := p.src[p.pos]
	switch {
	case c == '$' && p.peek(1) == '{':
		p.markText()
		end := ScanExpr(p.src, p.pos)
		if end < 0 {
			p.diags.AddInfof(p.position(p.pos), "unterminated expression; treating the rest of the template as text")
			p.pos = len(p.src)
			return
		}
		p.pos = end

	case c == '<' && strings.HasPrefix(p.src[p.pos:], "<!--"):
		p.flushText(p.pos)
		p.pos += len("<!--")
		p.state = stateComment

	case c == '<' && p.peek(1) == '/' && isLetter(p.peek(2)):
		p.flushText(p.pos)
		p.closeStart = p.pos
		p.pos += 2
		p.state = stateTagClose

	case c == '<' && isLetter(p.peek(1)):
		p.flushText(p.pos)
		p.state = stateTagOpen

	default:
		p.markText()
		p.pos++
	}
}

// lexTagOpen starts a new element at '<'.
func (p *Parser) lexTagOpen() {
	p.cur = &Element{TagStart: p.pos}
	p.pos++
	p.state = stateTagName
}

// lexTagName reads the tag name.
func (p *Parser) lexTagName() {
	start := p.pos
	for p.pos < len(p.src) && isTagNameChar(p.src[p.pos]) {
		p.pos++
	}
	p.cur.TagName = p.src[start:p.pos]
	p.cur.TagNameEnd = p.pos
	p.state = stateTagSpace
}

// lexTagSpace handles the whitespace between attributes and the end of the
// open tag.
func (p *Parser) lexTagSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return
	}

	c := p.src[p.pos]
	switch {
	case c == '>':
		p.pos++
		p.endOpenTag(false)
	case c == '/' && p.peek(1) == '>':
		p.pos += 2
		p.endOpenTag(true)
	case c == '/':
		p.pos++
	case c == '"' || c == '\'':
		// A bare quoted value with no name carries a directive.
		p.attr = &Attribute{Start: p.pos, Quote: c, HasValue: true}
		p.pos++
		p.attr.ValueStart = p.pos
		p.state = stateAttrValueQuoted
	case c == '$' && p.peek(1) == '{':
		p.attr = &Attribute{Start: p.pos, ValueStart: p.pos, HasValue: true}
		p.state = stateAttrValueUnquoted
	default:
		p.attr = &Attribute{Start: p.pos}
		p.state = stateAttrName
	}
}

// endOpenTag completes the open tag of the current element and attaches it
// to the tree.
func (p *Parser) endOpenTag(selfClosing bool) {
	el := p.cur
	p.cur = nil
	el.OpenTagEnd = p.pos
	el.SelfClosing = selfClosing
	el.Void = IsVoidElement(el.TagName)

	parent := p.top()
	el.Parent = parent
	parent.Children = append(parent.Children, el)
	p.state = stateText

	if selfClosing || el.Void {
		el.CloseTagStart = el.OpenTagEnd
		el.CloseTagEnd = el.OpenTagEnd
		el.Closed = true
		return
	}

	if isRawTextElement(el.TagName) {
		p.readRawText(el)
		return
	}

	p.stack = append(p.stack, el)
}

// readRawText consumes the content of a raw-text element up to its closing
// tag as a single text run.
func (p *Parser) readRawText(el *Element) {
	rel := indexFold(p.src[p.pos:], "</"+el.TagName)
	if rel < 0 {
		if p.pos < len(p.src) {
			el.Text = append(el.Text, &TextNode{Content: p.src[p.pos:], Start: p.pos, End: len(p.src), Parent: el})
		}
		p.diags.AddInfof(p.position(el.TagStart), "unclosed <%s>", el.TagName)
		el.CloseTagStart = len(p.src)
		el.CloseTagEnd = len(p.src)
		p.pos = len(p.src)
		return
	}

	closeStart := p.pos + rel
	if closeStart > p.pos {
		el.Text = append(el.Text, &TextNode{Content: p.src[p.pos:closeStart], Start: p.pos, End: closeStart, Parent: el})
	}
	closeEnd := len(p.src)
	if gt := strings.IndexByte(p.src[closeStart:], '>'); gt >= 0 {
		closeEnd = closeStart + gt + 1
	}
	el.CloseTagStart = closeStart
	el.CloseTagEnd = closeEnd
	el.Closed = true
	p.pos = closeEnd
}

// lexTagClose reads a closing tag and closes the matching open element.
// Elements opened after the match are implicitly closed at the closing
// tag's start. A closing tag without a matching open element is ignored.
func (p *Parser) lexTagClose() {
	start := p.pos
	for p.pos < len(p.src) && isTagNameChar(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	end := len(p.src)
	if gt := strings.IndexByte(p.src[p.pos:], '>'); gt >= 0 {
		end = p.pos + gt + 1
	}
	p.pos = end
	p.state = stateText

	for i := len(p.stack) - 1; i >= 0; i-- {
		el := p.stack[i]
		if !strings.EqualFold(el.TagName, name) {
			continue
		}
		for _, open := range p.stack[i+1:] {
			p.diags.AddInfof(p.position(open.TagStart), "unclosed <%s> closed by </%s>", open.TagName, name)
			open.CloseTagStart = p.closeStart
			open.CloseTagEnd = p.closeStart
		}
		el.CloseTagStart = p.closeStart
		el.CloseTagEnd = end
		el.Closed = true
		p.stack = p.stack[:i]
		return
	}

	p.diags.AddInfof(p.position(p.closeStart), "ignoring orphan closing tag </%s>", name)
}

// lexComment skips an opaque <!-- ... --> run.
func (p *Parser) lexComment() {
	rel := strings.Index(p.src[p.pos:], "-->")
	if rel < 0 {
		p.pos = len(p.src)
	} else {
		p.pos += rel + len("-->")
	}
	p.state = stateText
}

// finish flushes pending text and closes everything still open at the end
// of input.
func (p *Parser) finish() {
	switch p.state {
	case stateText, stateComment:
		p.flushText(len(p.src))
	case stateTagClose:
		// Already handled: lexTagClose consumes to the end of input.
	default:
		// An open tag cut off by the end of input is closed where it ends.
		if p.cur != nil {
			p.diags.AddInfof(p.position(p.cur.TagStart), "unterminated <%s> tag", p.cur.TagName)
			p.pos = len(p.src)
			p.endOpenTag(true)
		}
	}

	for i := len(p.stack) - 1; i >= 0; i-- {
		el := p.stack[i]
		p.diags.AddInfof(p.position(el.TagStart), "unclosed <%s>", el.TagName)
		el.CloseTagStart = len(p.src)
		el.CloseTagEnd = len(p.src)
	}
	p.stack = nil
}
