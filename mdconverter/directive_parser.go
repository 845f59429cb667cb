package mdconverter

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var directiveOpenPattern = regexp.MustCompile(`^(:{3,})([A-Za-z][A-Za-z0-9_-]*)(?:\[(.*)\])?[ \t]*$`)

// DirectiveParser parses ":::kind" and ":::kind[Label]" containers closed by
// a fence of the same length.
type DirectiveParser struct{}

func NewDirectiveParser() parser.BlockParser {
	return &DirectiveParser{}
}

func (p *DirectiveParser) Trigger() []byte {
	return []byte{':'}
}

func (p *DirectiveParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}

	rest := trimLineEnding(line[pos:])
	match := directiveOpenPattern.FindSubmatchIndex(rest)
	if match == nil {
		return nil, parser.NoChildren
	}

	node := NewDirectiveNode(string(rest[match[4]:match[5]]), match[3]-match[2])
	if match[6] >= 0 {
		node.HasLabel = true
		label := NewDirectiveLabelNode()
		lines := text.NewSegments()
		base := segment.Start + pos - segment.Padding
		labelSegment := text.NewSegment(base+match[6], base+match[7])
		labelSegment = labelSegment.TrimLeftSpace(reader.Source())
		labelSegment = labelSegment.TrimRightSpace(reader.Source())
		if !labelSegment.IsEmpty() {
			lines.Append(labelSegment)
		}
		label.SetLines(lines)
		node.AppendChild(node, label)
	}

	reader.Advance(len(line) - newlineLength(line))
	return node, parser.HasChildren
}

func (p *DirectiveParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	directive, ok := node.(*DirectiveNode)
	if !ok {
		return parser.Close
	}

	line, _ := reader.PeekLine()
	width, pos := util.IndentWidth(line, reader.LineOffset())
	if width < 4 && pos <= len(line) && isDirectiveClosingFence(trimLineEnding(line[pos:]), directive.FenceLength) {
		reader.Advance(len(line) - newlineLength(line))
		return parser.Close
	}

	return parser.Continue | parser.HasChildren
}

func (p *DirectiveParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *DirectiveParser) CanInterruptParagraph() bool {
	return true
}

func (p *DirectiveParser) CanAcceptIndentedLine() bool {
	return false
}

func isDirectiveClosingFence(line []byte, openingFenceLength int) bool {
	fenceLength := countLeadingChar(line, ':')
	if fenceLength < 3 || fenceLength != openingFenceLength {
		return false
	}
	return util.IsBlank(line[fenceLength:])
}
