package bindgen

// Kind identifies the variant of a Binding.
type Kind int

const (
	KindText Kind = iota
	KindStyle
	KindAttribute
	KindConditionalElement
	KindConditionalBranch
	KindList
	KindEvent
)

var kindNames = [...]string{
	KindText:               "text",
	KindStyle:              "style",
	KindAttribute:          "attribute",
	KindConditionalElement: "conditional-element",
	KindConditionalBranch:  "conditional-branch",
	KindList:               "list",
	KindEvent:              "event",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Binding associates reactive sources with a location in the template.
//
// Start and End delimit the full bound expression in the template text so
// that Text[Start:End] == Expression. For text bindings that is the
// ${...} occurrence; for attribute and style bindings the bound value; for
// conditional-element bindings the directive attribute; for event bindings
// the whole attribute.
type Binding struct {
	Kind       Kind
	Element    *Element
	Start      int
	End        int
	Expression string

	// Signals lists the referenced reactive source names, de-duplicated in
	// order of first reference.
	Signals []string

	// Inner is the expression text without the ${ } delimiters. For
	// compound bindings the generator recomputes the full value from it.
	Inner string

	// Simple is true when the bound value is exactly one reactive read.
	Simple bool

	Attr     *Attribute // attribute, style and event bindings
	Property string     // attribute name, or CSS property for style bindings
	Text     *TextNode  // text bindings

	Branch *Branch
	List   *List
	Event  *Event
}

// Branch is the payload of a conditional-branch binding.
type Branch struct {
	Condition Span
	Then      Span // sub-template content, between the backticks
	Else      Span
}

// List is the payload of a list binding.
type List struct {
	Items    Span
	Item     string
	Index    string // empty when the template function takes one parameter
	Body     Span   // item sub-template content, between the backticks
	Empty    *Span  // optional empty-state sub-template content
	KeyFn    string // optional key extraction function source
	Template Span   // the whole template function argument
}

// Event is the payload of an event binding.
type Event struct {
	Name      string
	Modifiers []string
	Handler   string
}

// Contains reports whether the binding's span lies within [start, end).
func (b *Binding) Contains(start, end int) bool {
	return b.Start >= start && b.End <= end
}
