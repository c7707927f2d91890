package csproj

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

const defaultIndent = "  "

// descendants returns every element below root (and root itself) with the
// given local name, in document order.
func descendants(root *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element

	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == tag {
			found = append(found, e)
		}

		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(root)

	return found
}

// children returns the direct children of e with the given local name.
func children(e *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element

	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			found = append(found, c)
		}
	}

	return found
}

func firstChild(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}

	return nil
}

// innerText concatenates all character data below e.
func innerText(e *etree.Element) string {
	sb := strings.Builder{}

	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, t := range e.Child {
			switch t := t.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)

	return sb.String()
}

// setInnerText replaces all children of e with a single text node.
func setInnerText(e *etree.Element, text string) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(len(e.Child) - 1)
	}

	if text != "" {
		e.SetText(text)
	}
}

// appendIndented adds child as the last element of parent, reusing the
// indentation of the existing children so the closing tag stays on its own
// line.
func appendIndented(parent, child *etree.Element) {
	n := len(parent.Child)
	if n == 0 {
		parent.AddChild(child)

		return
	}

	trailing, ok := parent.Child[n-1].(*etree.CharData)
	if !ok || !isWhitespace(trailing) {
		parent.AddChild(child)

		return
	}

	indent := trailing.Data + defaultIndent
	if last := lastChildElement(parent); last != nil {
		indent = ""
		if i := last.Index(); i > 0 {
			if prev, ok := parent.Child[i-1].(*etree.CharData); ok && isWhitespace(prev) {
				indent = prev.Data
			}
		}
	}

	parent.InsertChildAt(n-1, child)

	if indent != "" {
		parent.InsertChildAt(n-1, etree.NewText(indent))
	}
}

// removeIndented removes child from its parent together with the
// whitespace that indents it.
func removeIndented(child *etree.Element) {
	parent := child.Parent()
	if parent == nil {
		return
	}

	i := child.Index()
	parent.RemoveChildAt(i)

	if i == 0 {
		return
	}

	if prev, ok := parent.Child[i-1].(*etree.CharData); ok && isWhitespace(prev) {
		parent.RemoveChildAt(i - 1)
	}
}

func lastChildElement(e *etree.Element) *etree.Element {
	for i := len(e.Child) - 1; i >= 0; i-- {
		if c, ok := e.Child[i].(*etree.Element); ok {
			return c
		}
	}

	return nil
}

func isWhitespace(cd *etree.CharData) bool {
	return !cd.IsCData() && cd.IsWhitespace()
}

// newSetting creates a name/value element under group in the namespace of
// root. If root has no namespace, the element declares a unique placeholder
// namespace instead.
func newSetting(root, group *etree.Element, name, value string) *etree.Element {
	el := etree.NewElement(name)
	setInnerText(el, value)

	ns := root.NamespaceURI()
	if ns != "" {
		el.Space = root.Space
	}

	appendIndented(group, el)

	switch {
	case ns == "":
		el.CreateAttr("xmlns", placeholderNamespace())
	case el.NamespaceURI() != ns:
		// An ancestor redeclared the namespace bound to the root's prefix.
		if el.Space == "" {
			el.CreateAttr("xmlns", ns)
		} else {
			el.CreateAttr("xmlns:"+el.Space, ns)
		}
	}

	return el
}

func placeholderNamespace() string {
	return "urn:uuid:" + uuid.NewString()
}
