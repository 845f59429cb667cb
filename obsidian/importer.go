// Package obsidian imports notes from an Obsidian vault into the blog
// content collection, copying referenced images next to each post.
package obsidian

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/folio-theme/folio/internal/logger"
)

var (
	// ErrSkip marks a note excluded by its frontmatter.
	ErrSkip = errors.New("note skipped")
	// ErrValidation marks a note whose frontmatter is invalid.
	ErrValidation = errors.New("frontmatter validation failed")
	// ErrImageNotFound marks a referenced image missing from the attachment
	// directory.
	ErrImageNotFound = errors.New("image not found")
)

// Summary counts the notes handled by a run.
type Summary struct {
	Imported int
	Skipped  int
}

// Importer converts vault notes into blog entries. Runs stop at the first
// note that fails validation or references a missing image.
type Importer struct {
	config Config
	logger *logger.Logger
}

// New creates an Importer. A nil logger discards output.
func New(cfg Config, log *logger.Logger) (*Importer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid importer config: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Importer{config: cfg, logger: log}, nil
}

// Run imports every markdown file directly under the source directory.
func (im *Importer) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	var summary Summary

	files, err := im.noteFiles()
	if err != nil {
		return summary, err
	}
	im.logger.ImportStarted(im.config.SourceMarkdownDir, im.config.TargetDir)
	if len(files) == 0 {
		im.logger.Warn("no markdown files found in source directory", "dir", im.config.SourceMarkdownDir)
		return summary, nil
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dest, err := im.ImportNote(file)
		switch {
		case errors.Is(err, ErrSkip):
			im.logger.NoteSkipped(file, err.Error())
			summary.Skipped++
		case err != nil:
			im.logger.ImportFailed(file, err)
			return summary, fmt.Errorf("import stopped due to error in %s: %w", filepath.Base(file), err)
		default:
			im.logger.NoteImported(file, dest)
			summary.Imported++
		}
	}

	im.logger.ImportCompleted(summary.Imported, summary.Skipped, time.Since(started))
	return summary, nil
}

func (im *Importer) noteFiles() ([]string, error) {
	dir := im.config.SourceMarkdownDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// ImportNote converts one note and returns the path of the written
// index.md. Skipped notes return an error wrapping ErrSkip.
func (im *Importer) ImportNote(file string) (string, error) {
	filename := filepath.Base(file)

	source, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}

	n, err := parseNote(source)
	if err != nil {
		return "", fmt.Errorf("%w: [%s] %v", ErrValidation, filename, err)
	}
	if reason := n.skipReason(); reason != "" {
		return "", fmt.Errorf("%w: [%s] %s", ErrSkip, filename, reason)
	}
	if err := n.validate(); err != nil {
		return "", fmt.Errorf("%w: [%s] %v", ErrValidation, filename, err)
	}

	destDir := filepath.Join(im.config.TargetDir, safeName(stem(filename)))
	if err := os.MkdirAll(filepath.Join(destDir, assetsDir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	n.normalize(filename)

	images := &imageCopier{importer: im, destDir: destDir, copied: map[string]string{}}
	if err := images.banner(n); err != nil {
		return "", fmt.Errorf("[%s] banner: %w", filename, err)
	}
	body, err := images.body(string(n.body))
	if err != nil {
		return "", fmt.Errorf("[%s] %w", filename, err)
	}
	n.body = []byte(body)

	output, err := n.encode()
	if err != nil {
		return "", fmt.Errorf("[%s] %w", filename, err)
	}

	dest := filepath.Join(destDir, "index.md")
	if err := os.WriteFile(dest, output, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return dest, nil
}
