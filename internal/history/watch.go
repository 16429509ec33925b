package history

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/cnharrison/zirest/internal/errors"
)

const watchDebounce = 200 * time.Millisecond

// Watch calls onChange after path (or a sibling sharing its name as prefix,
// such as a SQLite -wal file) is written, created or replaced. Bursts of
// events within watchDebounce collapse into one call. Watching stops when ctx
// is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.NewHistoryError("cannot start file watcher", err)
	}

	// Watch the directory: atomic saves replace the file, which drops a
	// watch placed on the file itself.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = watcher.Close()
		return apperrors.NewHistoryError("cannot create "+dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return apperrors.NewHistoryError("cannot watch "+dir, err)
	}

	go watchLoop(ctx, watcher, filepath.Base(path), onChange)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, name string, onChange func()) {
	defer func() { _ = watcher.Close() }()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				log.Printf("history watcher error: %v", err)
			}
		}
	}
}
