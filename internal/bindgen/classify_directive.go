package bindgen

import "strings"

// branch classifies ${whenElse(cond, then, else)}. Exactly three arguments
// are required and both branches must be template literals.
func (c *classifier) branch(e *Element, tn *TextNode, s Span, call Call) {
	if len(call.Args) != 3 {
		c.warnHint(s.Start, "whenElse(cond, html`...`, html`...`)",
			"whenElse expects 3 arguments, got %d; binding dropped", len(call.Args))
		return
	}
	cond := call.Args[0]
	then, ok := TemplateLiteralContent(c.src, call.Args[1])
	if !ok {
		c.warn(call.Args[1].Start, "whenElse then-branch must be a template literal; binding dropped")
		return
	}
	els, ok := TemplateLiteralContent(c.src, call.Args[2])
	if !ok {
		c.warn(call.Args[2].Start, "whenElse else-branch must be a template literal; binding dropped")
		return
	}

	condText := cond.Text(c.src)
	_, simple := SingleRead(condText)
	c.add(&Binding{
		Kind:    KindConditionalBranch,
		Element: e,
		Start:   s.Start,
		End:     s.End,
		Signals: FindReads(condText),
		Inner:   condText,
		Simple:  simple,
		Text:    tn,
		Branch:  &Branch{Condition: cond, Then: then, Else: els},
	})
}

// list classifies ${repeat(items, (item, index) => html`...`[, empty][, keyFn])}.
// A third argument that is a function is the key function.
func (c *classifier) list(e *Element, tn *TextNode, s Span, call Call) {
	args := call.Args
	if len(args) < 2 || len(args) > 4 {
		c.warnHint(s.Start, "repeat(items, (item, index) => html`...`[, empty][, key])",
			"repeat expects 2 to 4 arguments, got %d; binding dropped", len(args))
		return
	}

	fn, ok := ParseArrow(c.src, args[1])
	if !ok || len(fn.Params) == 0 || len(fn.Params) > 2 {
		c.warn(args[1].Start, "repeat template must be an arrow function (item[, index]) => html`...`; binding dropped")
		return
	}
	body, ok := TemplateLiteralContent(c.src, fn.Body)
	if !ok {
		c.warn(fn.Body.Start, "repeat template function must return a template literal; binding dropped")
		return
	}
	for _, p := range fn.Params {
		if !IsIdentifier(p) {
			c.warn(args[1].Start, "repeat template parameter %q is not an identifier; binding dropped", p)
			return
		}
	}

	l := &List{
		Items:    args[0],
		Item:     fn.Params[0],
		Body:     body,
		Template: args[1],
	}
	if len(fn.Params) == 2 {
		l.Index = fn.Params[1]
	}

	if len(args) >= 3 {
		third := args[2]
		switch {
		case isNullish(third.Text(c.src)):
		case isFunction(c.src, third) && len(args) == 3:
			l.KeyFn = third.Text(c.src)
		default:
			empty, ok := TemplateLiteralContent(c.src, third)
			if !ok {
				c.warn(third.Start, "repeat empty state must be a template literal; binding dropped")
				return
			}
			l.Empty = &empty
		}
	}
	if len(args) == 4 {
		if key := args[3].Text(c.src); !isNullish(key) {
			l.KeyFn = key
		}
	}

	itemsText := args[0].Text(c.src)
	signals := FindReads(itemsText)
	if len(signals) == 0 {
		c.warn(args[0].Start, "repeat items %q do not read a reactive source; binding dropped", itemsText)
		return
	}
	_, simple := SingleRead(itemsText)
	c.add(&Binding{
		Kind:    KindList,
		Element: e,
		Start:   s.Start,
		End:     s.End,
		Signals: signals,
		Inner:   itemsText,
		Simple:  simple,
		Text:    tn,
		List:    l,
	})
}

func isNullish(s string) bool {
	s = strings.TrimSpace(s)
	return s == "null" || s == "undefined"
}

// isFunction reports whether s holds an arrow function or function
// expression.
func isFunction(src string, s Span) bool {
	if strings.HasPrefix(s.Text(src), "function") {
		return true
	}
	_, ok := ParseArrow(src, s)
	return ok
}
