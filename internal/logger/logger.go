package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ImportStarted logs the start of an import run
func (l *Logger) ImportStarted(sourceDir, targetDir string) {
	l.Info("import started",
		"source_dir", sourceDir,
		"target_dir", targetDir)
}

// NoteImported logs a successfully written note
func (l *Logger) NoteImported(source, dest string) {
	l.Info("note imported",
		"source", source,
		"dest", dest)
}

// NoteSkipped logs a note excluded by its frontmatter
func (l *Logger) NoteSkipped(source, reason string) {
	l.Info("note skipped",
		"source", source,
		"reason", reason)
}

// ImageCopied logs an attachment copied into a note's assets
func (l *Logger) ImageCopied(source, dest string) {
	l.Debug("image copied",
		"source", source,
		"dest", dest)
}

// ImportCompleted logs the completion of an import run
func (l *Logger) ImportCompleted(imported, skipped int, duration time.Duration) {
	l.Info("import completed",
		"imported", imported,
		"skipped", skipped,
		"duration", duration.Round(time.Millisecond))
}

// ImportFailed logs an import run stopped by an error
func (l *Logger) ImportFailed(source string, err error) {
	l.Error("import failed",
		"source", source,
		"error", err)
}

// WatchStarted logs the directories being watched
func (l *Logger) WatchStarted(dirs ...string) {
	l.Info("watching for changes", "dirs", dirs)
}

// RenderWarning logs a warning reported by the markdown converter
func (l *Logger) RenderWarning(kind, nodeType, message string) {
	l.Warn("render warning",
		"type", kind,
		"node", nodeType,
		"message", message)
}
