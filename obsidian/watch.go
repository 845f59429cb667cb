package obsidian

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long Watch waits after the last change before
// re-running the import.
const DebounceInterval = 500 * time.Millisecond

// Watch runs the import once, then again whenever the source or attachment
// directory changes. Failed runs are logged and watching continues. Watch
// returns when ctx is done.
func (im *Importer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs := []string{im.config.SourceMarkdownDir}
	if im.config.SourceAttachmentDir != im.config.SourceMarkdownDir {
		dirs = append(dirs, im.config.SourceAttachmentDir)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	im.runLogged(ctx)
	im.logger.WatchStarted(dirs...)

	timer := time.NewTimer(DebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				im.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
				timer.Reset(DebounceInterval)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			im.logger.Error("watcher error", "error", err)
		case <-timer.C:
			im.runLogged(ctx)
		}
	}
}

func (im *Importer) runLogged(ctx context.Context) {
	if _, err := im.Run(ctx); err != nil && ctx.Err() == nil {
		im.logger.Error("import run failed", "error", err)
	}
}
