package mdconverter

import (
	"regexp"
	"strings"

	"github.com/folio-theme/folio/callout"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var alertMarkerPattern = regexp.MustCompile(`^\[!([A-Za-z][A-Za-z0-9_-]*)\](?:[ \t]+(.*?))?[ \t]*$`)

const (
	attrAlertKind  = "data-alert-kind"
	attrAlertLabel = "data-alert-label"
)

// alertParagraphTransformer strips the "[!KIND]" marker line from the first
// paragraph of a blockquote and tags the blockquote for alertASTTransformer.
// It runs before inline parsing so the title becomes a regular label node.
type alertParagraphTransformer struct {
	detection AlertDetection
}

func (t *alertParagraphTransformer) Transform(node *ast.Paragraph, reader text.Reader, pc parser.Context) {
	blockquote, ok := node.Parent().(*ast.Blockquote)
	if !ok || blockquote.FirstChild() != node {
		return
	}
	if _, tagged := blockquote.AttributeString(attrAlertKind); tagged {
		return
	}

	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}

	source := reader.Source()
	first := lines.At(0)
	raw := trimLineEnding(first.Value(source))
	match := alertMarkerPattern.FindSubmatchIndex(raw)
	if match == nil {
		return
	}

	kind := strings.ToLower(string(raw[match[2]:match[3]]))
	if !t.accepts(kind) {
		return
	}

	blockquote.SetAttributeString(attrAlertKind, []byte(kind))
	if match[4] >= 0 && match[5] > match[4] {
		base := first.Start - first.Padding
		label := NewDirectiveLabelNode()
		labelLines := text.NewSegments()
		labelLines.Append(text.NewSegment(base+match[4], base+match[5]))
		label.SetLines(labelLines)
		blockquote.InsertBefore(blockquote, node, label)
		blockquote.SetAttributeString(attrAlertLabel, []byte("true"))
	}

	remaining := text.NewSegments()
	for index := 1; index < lines.Len(); index++ {
		remaining.Append(lines.At(index))
	}
	if remaining.Len() == 0 {
		blockquote.RemoveChild(blockquote, node)
		return
	}
	node.SetLines(remaining)
}

func (t *alertParagraphTransformer) accepts(kind string) bool {
	switch t.detection {
	case AlertDetectAll:
		return true
	case AlertDetectGitHub:
		for _, known := range callout.Kinds {
			if kind == known {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// alertASTTransformer replaces tagged blockquotes with directive nodes once
// the whole document has been parsed.
type alertASTTransformer struct{}

func (t *alertASTTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var tagged []*ast.Blockquote
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if blockquote, ok := node.(*ast.Blockquote); ok {
			if _, ok := blockquote.AttributeString(attrAlertKind); ok {
				tagged = append(tagged, blockquote)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, blockquote := range tagged {
		parent := blockquote.Parent()
		if parent == nil {
			continue
		}

		directive := NewDirectiveNode(attributeText(blockquote, attrAlertKind), 0)
		directive.Alert = true
		_, directive.HasLabel = blockquote.AttributeString(attrAlertLabel)

		for child := blockquote.FirstChild(); child != nil; {
			next := child.NextSibling()
			directive.AppendChild(directive, child)
			child = next
		}
		parent.ReplaceChild(parent, blockquote, directive)
	}
}

func attributeText(node ast.Node, name string) string {
	value, ok := node.AttributeString(name)
	if !ok {
		return ""
	}
	switch typed := value.(type) {
	case []byte:
		return string(typed)
	case string:
		return typed
	default:
		return ""
	}
}
