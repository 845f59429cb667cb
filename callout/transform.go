// Package callout turns parsed directive blocks into styled admonition nodes.
package callout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// PropHasLabel marks a directive whose first child is its label.
	PropHasLabel = "hasLabel"
	// PropClass is the class attribute key.
	PropClass = "class"

	// TitleClass is the class of the title element inside a callout.
	TitleClass = "admonition-title"
	// HiddenClass is the class of the fallback node for malformed directives.
	HiddenClass = "hidden"

	classPrefix = "admonition-"
)

// UsageHint is the text carried by the fallback node.
const UsageHint = `Invalid admonition directive. (Admonition directives must be of block type ":::note[title] <content> :::")`

// Kinds lists the documented callout kinds. Transform accepts any kind.
var Kinds = []string{"note", "tip", "important", "warning", "caution"}

// Handler converts a directive into a renderable node. Transform is the
// default implementation.
type Handler func(props Properties, children []Node, kind string) Node

// Transform builds a callout container for a directive of the given kind.
//
// When props signals a label, children[0] is consumed as the label and its
// text is appended to the title in parentheses. Empty children yield the
// hidden fallback node. The children slice is never modified.
func Transform(props Properties, children []Node, kind string) Node {
	if len(children) == 0 {
		return Fallback()
	}

	title := Capitalize(kind)
	body := children
	if HasLabel(props) {
		body = children[1:]
		if label := labelText(children[0]); label != "" {
			title = title + " (" + label + ")"
		}
	}

	content := make([]Node, 0, len(body)+1)
	content = append(content, Element("p", Properties{PropClass: TitleClass}, Text(title)))
	content = append(content, body...)

	return Element("div", Properties{PropClass: classPrefix + kind}, content...)
}

// Fallback returns the node emitted for malformed directives.
func Fallback() Node {
	return Element("div", Properties{PropClass: HiddenClass}, Text(UsageHint))
}

// IsFallback reports whether n is the node returned by Fallback.
func IsFallback(n Node) bool {
	return n.Type == TypeElement &&
		n.Tag == "div" &&
		n.Class() == HiddenClass &&
		len(n.Children) == 1 &&
		n.Children[0].Type == TypeText &&
		n.Children[0].Value == UsageHint
}

// HasLabel reports whether props carries a true label flag.
func HasLabel(props Properties) bool {
	if props == nil {
		return false
	}
	switch value := props[PropHasLabel].(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(strings.TrimSpace(value), "true")
	default:
		return false
	}
}

// Capitalize upper-cases the first character of s and leaves the rest as is.
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 || first == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(first)
	if upper == first {
		return s
	}
	return string(upper) + s[size:]
}

func labelText(label Node) string {
	var builder strings.Builder
	for _, child := range label.Children {
		builder.WriteString(child.Value)
	}
	return strings.TrimSpace(builder.String())
}
