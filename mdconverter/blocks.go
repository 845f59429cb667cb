package mdconverter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/folio-theme/folio/callout"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertParagraphNode(node *ast.Paragraph) ([]callout.Node, error) {
	content := s.convertInlineChildren(node)
	if len(content) == 0 {
		return nil, nil
	}
	return []callout.Node{callout.Element("p", nil, content...)}, nil
}

func (s *state) convertHeadingNode(node *ast.Heading) ([]callout.Node, error) {
	level := node.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	var props callout.Properties
	if id := attributeText(node, "id"); id != "" {
		props = callout.Properties{"id": id}
	}

	heading := callout.Element("h"+strconv.Itoa(level), props, s.convertInlineChildren(node)...)
	return []callout.Node{heading}, nil
}

func (s *state) convertContainerNode(tag string, node ast.Node) ([]callout.Node, error) {
	content, err := s.convertBlockChildren(node)
	if err != nil {
		return nil, err
	}
	return []callout.Node{callout.Element(tag, nil, content...)}, nil
}

func (s *state) convertListNode(node *ast.List) ([]callout.Node, error) {
	content, err := s.convertBlockChildren(node)
	if err != nil {
		return nil, err
	}

	if !node.IsOrdered() {
		return []callout.Node{callout.Element("ul", nil, content...)}, nil
	}

	var props callout.Properties
	if node.Start != 1 {
		props = callout.Properties{"start": strconv.Itoa(node.Start)}
	}
	return []callout.Node{callout.Element("ol", props, content...)}, nil
}

func (s *state) convertFencedCodeBlockNode(node *ast.FencedCodeBlock) ([]callout.Node, error) {
	var props callout.Properties
	if language := strings.TrimSpace(string(node.Language(s.source))); language != "" {
		props = callout.Properties{callout.PropClass: "language-" + language}
	}
	return []callout.Node{codeBlock(props, s.linesText(node))}, nil
}

func (s *state) convertCodeBlockNode(node *ast.CodeBlock) ([]callout.Node, error) {
	return []callout.Node{codeBlock(nil, s.linesText(node))}, nil
}

func codeBlock(props callout.Properties, body string) callout.Node {
	code := callout.Element("code", props)
	if body != "" {
		code.Children = []callout.Node{callout.Text(body)}
	}
	return callout.Element("pre", nil, code)
}

func (s *state) convertHTMLBlockNode(node *ast.HTMLBlock) ([]callout.Node, error) {
	raw := s.linesText(node)
	if node.HasClosure() {
		raw += string(node.ClosureLine.Value(s.source))
	}
	return s.rawHTML(raw, "htmlBlock"), nil
}

func (s *state) rawHTML(raw, nodeType string) []callout.Node {
	if raw == "" {
		return nil
	}

	switch s.config.RawHTML {
	case RawHTMLDrop:
		s.addWarning(WarningDroppedHTML, nodeType, "raw HTML dropped")
		return nil
	case RawHTMLEscape:
		return []callout.Node{callout.Text(raw)}
	default:
		return []callout.Node{callout.Raw(raw)}
	}
}

func (s *state) convertTableNode(node *extast.Table) ([]callout.Node, error) {
	var head, body []callout.Node

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *extast.TableHeader:
			head = append(head, callout.Element("tr", nil, s.convertTableCells(typed, "th")...))
		case *extast.TableRow:
			body = append(body, callout.Element("tr", nil, s.convertTableCells(typed, "td")...))
		}
	}

	table := callout.Element("table", nil)
	if len(head) > 0 {
		table.Children = append(table.Children, callout.Element("thead", nil, head...))
	}
	if len(body) > 0 {
		table.Children = append(table.Children, callout.Element("tbody", nil, body...))
	}
	return []callout.Node{table}, nil
}

func (s *state) convertTableCells(row ast.Node, tag string) []callout.Node {
	var cells []callout.Node
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*extast.TableCell)
		if !ok {
			continue
		}

		var props callout.Properties
		if cell.Alignment != extast.AlignNone {
			props = callout.Properties{"align": cell.Alignment.String()}
		}
		cells = append(cells, callout.Element(tag, props, s.convertInlineChildren(cell)...))
	}
	return cells
}

func (s *state) convertDirectiveNode(node *DirectiveNode) ([]callout.Node, error) {
	children, err := s.convertBlockChildren(node)
	if err != nil {
		return nil, err
	}

	props := callout.Properties{callout.PropHasLabel: node.HasLabel}
	converted := s.config.Handler(props, children, node.CalloutKind)
	if callout.IsFallback(converted) {
		s.addWarning(
			WarningInvalidDirective,
			node.Kind().String(),
			fmt.Sprintf("directive %q has no content", node.CalloutKind),
		)
	}

	return []callout.Node{converted}, nil
}
