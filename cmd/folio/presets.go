package main

import (
	"fmt"
	"strings"

	"github.com/folio-theme/folio/mdconverter"
)

const (
	presetGitHub   = "github"
	presetObsidian = "obsidian"
	presetStrict   = "strict"
	presetPlain    = "plain"
)

func presetConfig(preset string) (mdconverter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetGitHub:
		return mdconverter.Config{}, nil
	case presetObsidian:
		return mdconverter.Config{
			AlertDetection: mdconverter.AlertDetectAll,
		}, nil
	case presetStrict:
		return mdconverter.Config{
			RawHTML:      mdconverter.RawHTMLEscape,
			UnknownNodes: mdconverter.UnknownDrop,
		}, nil
	case presetPlain:
		return mdconverter.Config{
			AlertDetection:     mdconverter.AlertDetectNone,
			DirectiveDetection: mdconverter.DirectiveDetectNone,
		}, nil
	default:
		return mdconverter.Config{}, fmt.Errorf("unknown preset %q (allowed: github, obsidian, strict, plain)", preset)
	}
}

func resolveConfig(preset string, allowHTML, dropHTML bool) (mdconverter.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return mdconverter.Config{}, err
	}
	if allowHTML && dropHTML {
		return mdconverter.Config{}, fmt.Errorf("--allow-html and --drop-html are mutually exclusive")
	}

	if allowHTML {
		cfg.RawHTML = mdconverter.RawHTMLKeep
	}
	if dropHTML {
		cfg.RawHTML = mdconverter.RawHTMLDrop
	}

	return cfg, nil
}
