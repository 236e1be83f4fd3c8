package content

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the library whenever a markdown file in the content
// directory changes. It blocks until ctx is done.
func (l *Library) Watch(ctx context.Context, logger *zap.Logger) error {
	if l.dir == "" {
		return fmt.Errorf("no content directory to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watching %s: %w", l.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".md") || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := l.Reload(); err != nil {
				logger.Warn("content reload failed", zap.String("file", filepath.Base(ev.Name)), zap.Error(err))
				continue
			}
			logger.Info("content reloaded", zap.String("file", filepath.Base(ev.Name)))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("content watcher", zap.Error(err))
		}
	}
}
