package zone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path into t whenever the file is written or replaced, until ctx is done.
// A file that fails to load leaves the previous table in place.
func Watch(ctx context.Context, path string, t *Table, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("zone watcher: %w", err)
	}
	// watch the directory; editors often save by rename
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
					// truncated mid-save; the write that follows reloads
					continue
				}
				next, err := LoadFile(path)
				if err != nil {
					log.Warn("zone reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				t.replace(next)
				log.Info("zones reloaded", zap.String("path", path), zap.Int("zones", len(next.zones)))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("zone watcher", zap.Error(err))
			}
		}
	}()
	return nil
}
