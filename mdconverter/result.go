package mdconverter

import "github.com/folio-theme/folio/callout"

// Result holds the output of a conversion.
type Result struct {
	HTML     string       `json:"html"`
	Tree     callout.Node `json:"tree"`
	Warnings []Warning    `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode      WarningType = "unknown_node"
	WarningDroppedHTML      WarningType = "dropped_html"
	WarningInvalidDirective WarningType = "invalid_directive"
	WarningUnsafeURL        WarningType = "unsafe_url"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
