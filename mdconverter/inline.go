package mdconverter

import (
	"fmt"
	"strings"

	"github.com/folio-theme/folio/callout"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

func (s *state) convertInlineChildren(parent ast.Node) []callout.Node {
	var content []callout.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		for _, converted := range s.convertInlineNode(child) {
			content = appendInline(content, converted)
		}
	}
	return content
}

// appendInline merges adjacent text nodes so the tree carries one text node
// per run of literal characters.
func appendInline(content []callout.Node, node callout.Node) []callout.Node {
	if node.Type == callout.TypeText && node.Value == "" {
		return content
	}
	last := len(content) - 1
	if node.Type == callout.TypeText && last >= 0 && content[last].Type == callout.TypeText {
		content[last].Value += node.Value
		return content
	}
	return append(content, node)
}

func (s *state) convertInlineNode(node ast.Node) []callout.Node {
	switch typed := node.(type) {
	case *ast.Text:
		return s.convertTextNode(typed)
	case *ast.String:
		return []callout.Node{callout.Text(string(typed.Value))}
	case *ast.Emphasis:
		tag := "em"
		if typed.Level >= 2 {
			tag = "strong"
		}
		return []callout.Node{callout.Element(tag, nil, s.convertInlineChildren(typed)...)}
	case *extast.Strikethrough:
		return []callout.Node{callout.Element("del", nil, s.convertInlineChildren(typed)...)}
	case *ast.CodeSpan:
		return []callout.Node{callout.Element("code", nil, callout.Text(s.plainText(typed)))}
	case *ast.Link:
		props := callout.Properties{"href": s.safeURL(typed.Destination, "link")}
		if len(typed.Title) > 0 {
			props["title"] = unescapeText(typed.Title)
		}
		return []callout.Node{callout.Element("a", props, s.convertInlineChildren(typed)...)}
	case *ast.Image:
		props := callout.Properties{
			"src": s.safeURL(typed.Destination, "image"),
			"alt": s.plainText(typed),
		}
		if len(typed.Title) > 0 {
			props["title"] = unescapeText(typed.Title)
		}
		return []callout.Node{callout.Element("img", props)}
	case *ast.AutoLink:
		return []callout.Node{s.convertAutoLinkNode(typed)}
	case *ast.RawHTML:
		return s.rawHTML(s.segmentsText(typed), "rawHTML")
	case *extast.TaskCheckBox:
		props := callout.Properties{
			"type":     "checkbox",
			"disabled": true,
			"checked":  typed.IsChecked,
		}
		return []callout.Node{callout.Element("input", props), callout.Text(" ")}
	default:
		return s.unknownNode(node, "inline")
	}
}

func (s *state) convertTextNode(node *ast.Text) []callout.Node {
	value := textValue(node, s.source)
	switch {
	case node.HardLineBreak():
		return []callout.Node{
			callout.Text(strings.TrimRight(value, " \t")),
			callout.Element("br", nil),
			callout.Text("\n"),
		}
	case node.SoftLineBreak():
		return []callout.Node{callout.Text(value + "\n")}
	default:
		return []callout.Node{callout.Text(value)}
	}
}

func (s *state) convertAutoLinkNode(node *ast.AutoLink) callout.Node {
	label := string(node.Label(s.source))
	href := string(node.URL(s.source))
	if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
		href = "mailto:" + href
	}
	return callout.Element("a", callout.Properties{"href": s.safeURL([]byte(href), "autoLink")}, callout.Text(label))
}

// textValue returns the literal characters of a text segment with backslash
// escapes and entity references resolved. Raw segments such as code span
// contents are returned as written.
func textValue(node *ast.Text, source []byte) string {
	value := node.Segment.Value(source)
	if node.IsRaw() {
		return string(value)
	}
	return unescapeText(value)
}

func unescapeText(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}

// safeURL blanks javascript:, vbscript:, file: and non-image data: URLs
// unless raw HTML is kept.
func (s *state) safeURL(destination []byte, nodeType string) string {
	if s.config.RawHTML != RawHTMLKeep && gmhtml.IsDangerousURL(destination) {
		s.addWarning(WarningUnsafeURL, nodeType, fmt.Sprintf("unsafe URL removed: %s", destination))
		return ""
	}
	return string(destination)
}

func (s *state) segmentsText(node *ast.RawHTML) string {
	var builder strings.Builder
	for index := 0; index < node.Segments.Len(); index++ {
		segment := node.Segments.At(index)
		builder.Write(segment.Value(s.source))
	}
	return builder.String()
}
