package patterns

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever its overrides file is rewritten, so a
// refinement run in another process reaches a long-lived server without a
// restart. Events are debounced because an atomic-rename publish emits a
// small burst. Returns after ctx is done.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Error("patterns.watch_failed", "error", err)
		return err
	}
	defer w.Close()

	// Watch the directory: rename-based publishes replace the file inode.
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		s.logger.Error("patterns.watch_add_failed", "dir", dir, "error", err)
		return err
	}
	target := filepath.Clean(s.path)

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("patterns.watch_error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			if err := s.Reload(); err != nil {
				s.logger.Warn("patterns.reload_failed", "error", err)
			}
		}
	}
}
