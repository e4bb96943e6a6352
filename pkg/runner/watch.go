package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/observability"
)

// DefaultDebounce coalesces bursts of events on one file.
const DefaultDebounce = 100 * time.Millisecond

// ReportFunc receives each report produced while watching
type ReportFunc func(*linter.FileReport)

// Watch relints a file whenever it is written or created under roots, and
// starts watching newly created directories. It blocks until ctx is done.
func (r *Runner) Watch(ctx context.Context, roots []string, onReport ReportFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := r.addWatchTree(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}
	r.logger.WithField("roots", roots).Info("Watching for changes")

	pending := make(map[string]bool)
	timer := time.NewTimer(DefaultDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := r.addWatchTree(watcher, event.Name); err != nil {
						r.logger.WithError(err).WithField("path", event.Name).Warn("Failed to watch new directory")
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !r.config.HasLintableExtension(event.Name) || r.config.IsIgnored(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(DefaultDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.WithError(err).Warn("Watcher error")
		case <-timer.C:
			for path := range pending {
				delete(pending, path)
				r.relint(ctx, path, onReport)
			}
		}
	}
}

func (r *Runner) relint(ctx context.Context, path string, onReport ReportFunc) {
	defer observability.RecoverPanic(r.logger, "relint "+path)

	report, err := r.LintFile(ctx, path)
	if err != nil {
		r.logger.WithError(err).WithField("path", path).Warn("Failed to lint changed file")
		return
	}
	if onReport != nil {
		onReport(report)
	}
}

// addWatchTree watches root and every non-skipped directory below it
func (r *Runner) addWatchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
