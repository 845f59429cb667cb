package main

import (
	"testing"

	"github.com/folio-theme/folio/mdconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetConfig(t *testing.T) {
	t.Run("github", func(t *testing.T) {
		cfg, err := presetConfig(presetGitHub)
		require.NoError(t, err)
		assert.Equal(t, mdconverter.Config{}, cfg)
	})

	t.Run("empty defaults to github", func(t *testing.T) {
		cfg, err := presetConfig("")
		require.NoError(t, err)
		assert.Equal(t, mdconverter.Config{}, cfg)
	})

	t.Run("obsidian", func(t *testing.T) {
		cfg, err := presetConfig(presetObsidian)
		require.NoError(t, err)
		assert.Equal(t, mdconverter.AlertDetectAll, cfg.AlertDetection)
	})

	t.Run("strict", func(t *testing.T) {
		cfg, err := presetConfig(" STRICT ")
		require.NoError(t, err)
		assert.Equal(t, mdconverter.RawHTMLEscape, cfg.RawHTML)
		assert.Equal(t, mdconverter.UnknownDrop, cfg.UnknownNodes)
	})

	t.Run("plain", func(t *testing.T) {
		cfg, err := presetConfig(presetPlain)
		require.NoError(t, err)
		assert.Equal(t, mdconverter.AlertDetectNone, cfg.AlertDetection)
		assert.Equal(t, mdconverter.DirectiveDetectNone, cfg.DirectiveDetection)
	})
}

func TestPresetConfigInvalid(t *testing.T) {
	_, err := presetConfig("unknown")
	require.Error(t, err)
	assert.Equal(t, `unknown preset "unknown" (allowed: github, obsidian, strict, plain)`, err.Error())
}

func TestResolveConfigFlagPrecedence(t *testing.T) {
	cfg, err := resolveConfig(presetStrict, true, false)
	require.NoError(t, err)
	assert.Equal(t, mdconverter.RawHTMLKeep, cfg.RawHTML)
	assert.Equal(t, mdconverter.UnknownDrop, cfg.UnknownNodes)

	cfg, err = resolveConfig(presetGitHub, false, true)
	require.NoError(t, err)
	assert.Equal(t, mdconverter.RawHTMLDrop, cfg.RawHTML)

	_, err = resolveConfig(presetGitHub, true, true)
	require.Error(t, err)
}
