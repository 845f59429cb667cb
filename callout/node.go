package callout

import "strings"

// Node types.
const (
	TypeRoot    = "root"
	TypeElement = "element"
	TypeText    = "text"
	TypeRaw     = "raw"
)

// Properties holds element attributes and transform flags.
type Properties map[string]any

// Node is a renderable tree node. Elements carry a Tag and Properties, text
// and raw nodes carry a Value.
type Node struct {
	Type       string     `json:"type"`
	Tag        string     `json:"tagName,omitempty"`
	Value      string     `json:"value,omitempty"`
	Properties Properties `json:"properties,omitempty"`
	Children   []Node     `json:"children,omitempty"`
}

// Root creates a root node holding children.
func Root(children ...Node) Node {
	return Node{Type: TypeRoot, Children: children}
}

// Element creates an element node.
func Element(tag string, props Properties, children ...Node) Node {
	return Node{
		Type:       TypeElement,
		Tag:        tag,
		Properties: props,
		Children:   children,
	}
}

// Text creates a text node.
func Text(value string) Node {
	return Node{Type: TypeText, Value: value}
}

// Raw creates a node whose value is emitted verbatim by renderers.
func Raw(value string) Node {
	return Node{Type: TypeRaw, Value: value}
}

// Class returns the class property of an element, or "".
func (n Node) Class() string {
	if n.Properties == nil {
		return ""
	}
	switch value := n.Properties[PropClass].(type) {
	case string:
		return value
	case []string:
		return strings.Join(value, " ")
	default:
		return ""
	}
}

// FlattenText concatenates the literal values of n and all of its
// descendants in document order.
func FlattenText(n Node) string {
	var builder strings.Builder
	flattenInto(&builder, n)
	return builder.String()
}

func flattenInto(builder *strings.Builder, n Node) {
	builder.WriteString(n.Value)
	for _, child := range n.Children {
		flattenInto(builder, child)
	}
}
