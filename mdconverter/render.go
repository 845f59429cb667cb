package mdconverter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/folio-theme/folio/callout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockTags = map[string]bool{
	"blockquote": true, "div": true, "hr": true, "li": true, "ol": true,
	"p": true, "pre": true, "ul": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "th": true, "td": true,
}

var containerTags = map[string]bool{
	"blockquote": true, "div": true, "li": true, "ol": true, "ul": true,
	"table": true, "thead": true, "tbody": true, "tr": true,
}

// Render writes n as HTML. Block elements are followed by a newline and
// containers holding blocks open on their own line.
func Render(w io.Writer, n callout.Node) error {
	converted, err := toHTMLNode(n)
	if err != nil {
		return err
	}
	return html.Render(w, converted)
}

// RenderString renders n and returns the HTML.
func RenderString(n callout.Node) (string, error) {
	var builder strings.Builder
	if err := Render(&builder, n); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func toHTMLNode(n callout.Node) (*html.Node, error) {
	switch n.Type {
	case callout.TypeRoot:
		root := &html.Node{Type: html.DocumentNode}
		if err := appendHTMLChildren(root, n.Children); err != nil {
			return nil, err
		}
		return root, nil
	case callout.TypeText:
		return &html.Node{Type: html.TextNode, Data: n.Value}, nil
	case callout.TypeRaw:
		return &html.Node{Type: html.RawNode, Data: n.Value}, nil
	case callout.TypeElement:
		if n.Tag == "" {
			return nil, fmt.Errorf("element without tag name")
		}
		element := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
			Attr:     htmlAttributes(n.Properties),
		}
		if containerTags[n.Tag] && hasBlockChild(n.Children) {
			element.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
		}
		if err := appendHTMLChildren(element, n.Children); err != nil {
			return nil, err
		}
		return element, nil
	default:
		return nil, fmt.Errorf("unsupported node type %q", n.Type)
	}
}

func appendHTMLChildren(parent *html.Node, children []callout.Node) error {
	for _, child := range children {
		converted, err := toHTMLNode(child)
		if err != nil {
			return err
		}
		if converted.Type == html.DocumentNode {
			for grandchild := converted.FirstChild; grandchild != nil; {
				next := grandchild.NextSibling
				converted.RemoveChild(grandchild)
				parent.AppendChild(grandchild)
				grandchild = next
			}
			continue
		}
		parent.AppendChild(converted)
		if isBlock(child) {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
		}
	}
	return nil
}

func isBlock(n callout.Node) bool {
	return n.Type == callout.TypeElement && blockTags[n.Tag]
}

func hasBlockChild(children []callout.Node) bool {
	for _, child := range children {
		if isBlock(child) {
			return true
		}
	}
	return false
}

// htmlAttributes renders properties in key order. Transform flags and values
// without an attribute form are skipped.
func htmlAttributes(props callout.Properties) []html.Attribute {
	if len(props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		if key == callout.PropHasLabel {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]html.Attribute, 0, len(keys))
	for _, key := range keys {
		value, ok := attributeValue(props[key])
		if !ok {
			continue
		}
		attrs = append(attrs, html.Attribute{Key: key, Val: value})
	}
	return attrs
}

func attributeValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case []string:
		return strings.Join(typed, " "), true
	case bool:
		return "", typed
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return "", false
	}
}
