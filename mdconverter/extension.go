package mdconverter

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

// Extension registers the callout syntaxes on a goldmark instance. The zero
// value enables ":::kind" containers and GitHub alerts.
type Extension struct {
	AlertDetection     AlertDetection
	DirectiveDetection DirectiveDetection
}

// NewExtension returns an Extension configured from cfg.
func NewExtension(cfg Config) *Extension {
	return &Extension{
		AlertDetection:     cfg.AlertDetection,
		DirectiveDetection: cfg.DirectiveDetection,
	}
}

func (e *Extension) Extend(m goldmark.Markdown) {
	alerts := e.AlertDetection
	if alerts == "" {
		alerts = AlertDetectGitHub
	}

	var options []parser.Option
	if e.DirectiveDetection != DirectiveDetectNone {
		options = append(options, parser.WithBlockParsers(
			util.Prioritized(NewDirectiveParser(), 750),
		))
	}
	if alerts != AlertDetectNone {
		options = append(options,
			parser.WithParagraphTransformers(
				util.Prioritized(&alertParagraphTransformer{detection: alerts}, 150),
			),
			parser.WithASTTransformers(
				util.Prioritized(&alertASTTransformer{}, 100),
			),
		)
	}
	if len(options) > 0 {
		m.Parser().AddOptions(options...)
	}
}
