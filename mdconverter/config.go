package mdconverter

import (
	"fmt"

	"github.com/folio-theme/folio/callout"
)

// AlertDetection controls which "> [!KIND]" blockquotes become callouts.
type AlertDetection string

const (
	AlertDetectNone   AlertDetection = "none"
	AlertDetectGitHub AlertDetection = "github"
	AlertDetectAll    AlertDetection = "all"
)

// DirectiveDetection controls whether ":::kind" containers are parsed.
type DirectiveDetection string

const (
	DirectiveDetectNone      DirectiveDetection = "none"
	DirectiveDetectContainer DirectiveDetection = "container"
)

// RawHTMLMode controls how raw HTML in the source is emitted.
type RawHTMLMode string

const (
	RawHTMLKeep   RawHTMLMode = "keep"
	RawHTMLEscape RawHTMLMode = "escape"
	RawHTMLDrop   RawHTMLMode = "drop"
)

// UnknownNodePolicy controls how unsupported markdown nodes are handled.
type UnknownNodePolicy string

const (
	UnknownText UnknownNodePolicy = "text"
	UnknownDrop UnknownNodePolicy = "drop"
)

// Config configures Markdown to HTML conversion.
type Config struct {
	AlertDetection     AlertDetection     `json:"alertDetection,omitempty"`
	DirectiveDetection DirectiveDetection `json:"directiveDetection,omitempty"`
	RawHTML            RawHTMLMode        `json:"rawHTML,omitempty"`
	UnknownNodes       UnknownNodePolicy  `json:"unknownNodes,omitempty"`
	Handler            callout.Handler    `json:"-"`
}

func (c Config) applyDefaults() Config {
	if c.AlertDetection == "" {
		c.AlertDetection = AlertDetectGitHub
	}
	if c.DirectiveDetection == "" {
		c.DirectiveDetection = DirectiveDetectContainer
	}
	if c.RawHTML == "" {
		c.RawHTML = RawHTMLKeep
	}
	if c.UnknownNodes == "" {
		c.UnknownNodes = UnknownText
	}
	if c.Handler == nil {
		c.Handler = callout.Transform
	}

	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.AlertDetection != AlertDetectNone &&
		c.AlertDetection != AlertDetectGitHub &&
		c.AlertDetection != AlertDetectAll {
		return fmt.Errorf("invalid alertDetection %q", c.AlertDetection)
	}

	if c.DirectiveDetection != DirectiveDetectNone &&
		c.DirectiveDetection != DirectiveDetectContainer {
		return fmt.Errorf("invalid directiveDetection %q", c.DirectiveDetection)
	}

	if c.RawHTML != RawHTMLKeep &&
		c.RawHTML != RawHTMLEscape &&
		c.RawHTML != RawHTMLDrop {
		return fmt.Errorf("invalid rawHTML %q", c.RawHTML)
	}

	if c.UnknownNodes != UnknownText && c.UnknownNodes != UnknownDrop {
		return fmt.Errorf("invalid unknownNodes %q", c.UnknownNodes)
	}

	if c.Handler == nil {
		return fmt.Errorf("handler must not be nil")
	}

	return nil
}
