package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/keystonecrm/planner/pkg/observability"
)

// ReloadFunc rebuilds whatever depends on the catalog documents. A returned
// error leaves the previous catalog in service.
type ReloadFunc func() error

// Watcher watches a catalog directory and calls a ReloadFunc after the
// module or bundle documents change. Catalogs themselves stay immutable; a
// reload builds a new one and the caller swaps it in.
type Watcher struct {
	dir      string
	debounce time.Duration
	reload   ReloadFunc
	logger   *observability.Logger
}

// NewWatcher creates a watcher for dir
func NewWatcher(dir string, debounce time.Duration, reload ReloadFunc, logger *observability.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = observability.Discard()
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		reload:   reload,
		logger:   logger.WithField("component", "catalog-watcher"),
	}
}

// Run blocks until ctx is canceled or the underlying watcher fails
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Infof("Watching catalog directory %s", w.dir)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isCatalogFile(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.WithField("file", event.Name).Debug("Catalog file changed")
			// Editors often write in several steps; coalesce them.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			runReload(w.logger, w.reload)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Catalog watcher error")
		}
	}
}

func runReload(logger *observability.Logger, reload ReloadFunc) {
	defer observability.RecoverPanic(logger, "catalog reload")

	if err := reload(); err != nil {
		logger.WithError(err).Error("Catalog reload rejected, keeping previous catalog")
		return
	}
	logger.Info("Catalog reloaded")
}

func isCatalogFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range moduleFileNames {
		if base == name {
			return true
		}
	}
	for _, name := range bundleFileNames {
		if base == name {
			return true
		}
	}
	return false
}
