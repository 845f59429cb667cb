package mdconverter

import (
	"fmt"
	"strings"

	"github.com/folio-theme/folio/callout"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertDocument(root ast.Node) (callout.Node, error) {
	if err := s.checkContext(); err != nil {
		return callout.Node{}, err
	}

	content, err := s.convertBlockChildren(root)
	if err != nil {
		return callout.Node{}, err
	}

	return callout.Root(content...), nil
}

func (s *state) convertBlockChildren(parent ast.Node) ([]callout.Node, error) {
	var content []callout.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.checkContext(); err != nil {
			return nil, err
		}

		converted, err := s.convertBlockNode(child)
		if err != nil {
			return nil, err
		}
		content = append(content, converted...)
	}
	return content, nil
}

func (s *state) convertBlockNode(node ast.Node) ([]callout.Node, error) {
	switch typed := node.(type) {
	case *ast.Paragraph:
		return s.convertParagraphNode(typed)
	case *ast.TextBlock:
		return s.convertInlineChildren(typed), nil
	case *ast.Heading:
		return s.convertHeadingNode(typed)
	case *ast.Blockquote:
		return s.convertContainerNode("blockquote", typed)
	case *ast.ThematicBreak:
		return []callout.Node{callout.Element("hr", nil)}, nil
	case *ast.FencedCodeBlock:
		return s.convertFencedCodeBlockNode(typed)
	case *ast.CodeBlock:
		return s.convertCodeBlockNode(typed)
	case *ast.List:
		return s.convertListNode(typed)
	case *ast.ListItem:
		return s.convertContainerNode("li", typed)
	case *ast.HTMLBlock:
		return s.convertHTMLBlockNode(typed)
	case *extast.Table:
		return s.convertTableNode(typed)
	case *DirectiveNode:
		return s.convertDirectiveNode(typed)
	case *DirectiveLabelNode:
		return []callout.Node{callout.Element("p", nil, s.convertInlineChildren(typed)...)}, nil
	default:
		return s.unknownNode(node, "block"), nil
	}
}

func (s *state) unknownNode(node ast.Node, class string) []callout.Node {
	nodeKind := node.Kind().String()
	value := strings.TrimSpace(s.plainText(node))
	if value == "" {
		return nil
	}

	if s.config.UnknownNodes == UnknownDrop {
		s.addWarning(
			WarningUnknownNode,
			nodeKind,
			fmt.Sprintf("unsupported markdown %s node dropped: %s", class, nodeKind),
		)
		return nil
	}

	s.addWarning(
		WarningUnknownNode,
		nodeKind,
		fmt.Sprintf("unsupported markdown %s node: %s", class, nodeKind),
	)
	if class == "block" {
		return []callout.Node{callout.Element("p", nil, callout.Text(value))}
	}
	return []callout.Node{callout.Text(value)}
}

// plainText collects the literal text below node, falling back to its raw
// lines for leaf blocks.
func (s *state) plainText(node ast.Node) string {
	var builder strings.Builder
	_ = ast.Walk(node, func(current ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := current.(type) {
		case *ast.Text:
			builder.WriteString(textValue(typed, s.source))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(typed.Value)
		}
		return ast.WalkContinue, nil
	})
	if builder.Len() == 0 && node.Type() == ast.TypeBlock && !node.HasChildren() {
		return s.linesText(node)
	}
	return builder.String()
}

func (s *state) linesText(node ast.Node) string {
	lines := node.Lines()
	if lines == nil {
		return ""
	}
	var builder strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(s.source))
	}
	return builder.String()
}
