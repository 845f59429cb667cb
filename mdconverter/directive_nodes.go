package mdconverter

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

var (
	KindDirective      = ast.NewNodeKind("Directive")
	KindDirectiveLabel = ast.NewNodeKind("DirectiveLabel")
)

// DirectiveNode is a callout container produced by either the ":::kind"
// fence syntax or a "> [!KIND]" alert blockquote. When HasLabel is set its
// first child is a *DirectiveLabelNode.
type DirectiveNode struct {
	ast.BaseBlock
	CalloutKind string
	HasLabel    bool
	FenceLength int
	Alert       bool
}

func NewDirectiveNode(kind string, fenceLength int) *DirectiveNode {
	return &DirectiveNode{
		CalloutKind: kind,
		FenceLength: fenceLength,
	}
}

func (n *DirectiveNode) Kind() ast.NodeKind {
	return KindDirective
}

func (n *DirectiveNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"CalloutKind": n.CalloutKind,
		"HasLabel":    strconv.FormatBool(n.HasLabel),
		"FenceLength": strconv.Itoa(n.FenceLength),
		"Alert":       strconv.FormatBool(n.Alert),
	}, nil)
}

// Label returns the label child, or nil when the directive has none.
func (n *DirectiveNode) Label() *DirectiveLabelNode {
	if !n.HasLabel {
		return nil
	}
	label, _ := n.FirstChild().(*DirectiveLabelNode)
	return label
}

// DirectiveLabelNode holds the inline content of a directive's bracketed
// label or an alert's title.
type DirectiveLabelNode struct {
	ast.BaseBlock
}

func NewDirectiveLabelNode() *DirectiveLabelNode {
	return &DirectiveLabelNode{}
}

func (n *DirectiveLabelNode) Kind() ast.NodeKind {
	return KindDirectiveLabel
}

func (n *DirectiveLabelNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

func trimLineEnding(raw []byte) []byte {
	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		raw = raw[:n-1]
	}
	if n := len(raw); n > 0 && raw[n-1] == '\r' {
		raw = raw[:n-1]
	}
	return raw
}

func newlineLength(raw []byte) int {
	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		return 1
	}
	return 0
}

func countLeadingChar(value []byte, target byte) int {
	count := 0
	for count < len(value) && value[count] == target {
		count++
	}
	return count
}
