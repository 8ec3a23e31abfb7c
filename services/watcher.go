package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"catalog-converter/config"
	"catalog-converter/utils"
)

// debounceDelay absorbs the burst of write events an FTP upload or editor
// save produces before triggering a run.
const debounceDelay = 500 * time.Millisecond

// Watcher triggers a conversion run whenever the source file changes on
// disk, with a periodic rebuild as a fallback for filesystems that do not
// deliver events.
type Watcher struct {
	cfg      *config.Config
	pipeline *Pipeline
	logger   *utils.Logger
}

// NewWatcher creates a Watcher around an assembled pipeline.
func NewWatcher(cfg *config.Config, pipeline *Pipeline, logger *utils.Logger) *Watcher {
	return &Watcher{cfg: cfg, pipeline: pipeline, logger: logger}
}

// Watch blocks, converting on source-file changes until the process exits.
// The watch is on the containing directory: exports are typically replaced
// by rename, which would drop a watch held on the file itself.
func (w *Watcher) Watch() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.cfg.SourcePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("watch: create source dir: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch: add %q: %w", dir, err)
	}

	w.logger.Info("[watch] Watching %s (poll fallback every %dms)", dir, w.cfg.WatchPollMs)

	ticker := time.NewTicker(time.Duration(w.cfg.WatchPollMs) * time.Millisecond)
	defer ticker.Stop()

	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	// Convert whatever is already in place before waiting for events.
	w.runOnce(false)

	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.isSource(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Debug("[watch] %s on %s", ev.Op, ev.Name)
				debounce.Reset(debounceDelay)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("[watch] Watcher error: %v", err)

		case <-debounce.C:
			w.runOnce(false)

		case <-ticker.C:
			// The periodic rebuild is only a safety net; skip it rather
			// than queue behind a run that is already in flight.
			if ran, err := w.pipeline.TryRun(false); err != nil {
				w.logger.Error("[watch] Conversion run failed: %v", err)
			} else if !ran {
				w.logger.Debug("[watch] Periodic rebuild skipped, a run is in flight")
			}
		}
	}
}

func (w *Watcher) isSource(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	src, err := filepath.Abs(w.cfg.SourcePath)
	if err != nil {
		return false
	}
	return abs == src
}

func (w *Watcher) runOnce(force bool) {
	if err := w.pipeline.Run(force); err != nil {
		w.logger.Error("[watch] Conversion run failed: %v", err)
	}
}
