package mdconverter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Converter converts GFM markdown with callout directives to HTML.
type Converter struct {
	config Config
	parser goldmark.Markdown
}

type state struct {
	ctx      context.Context
	config   Config
	source   []byte
	warnings []Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM, NewExtension(cfg)),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}, nil
}

// Convert takes a markdown document and returns rendered HTML.
func (c *Converter) Convert(markdown string) (Result, error) {
	return c.ConvertWithContext(context.Background(), markdown)
}

// ConvertWithContext converts markdown, aborting when ctx is cancelled.
func (c *Converter) ConvertWithContext(ctx context.Context, markdown string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:    ctx,
		config: c.config,
		source: []byte(markdown),
	}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	tree, err := s.convertDocument(root)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := Render(&buf, tree); err != nil {
		return Result{}, fmt.Errorf("failed to render HTML: %w", err)
	}

	return Result{
		HTML:     buf.String(),
		Tree:     tree,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}
