// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch reruns generation whenever the input document changes.
// Every run is a full rebuild; the watcher only decides when to run.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pdiddy/mdtypes/pkg/types"
)

// RunFunc performs one generation run.
type RunFunc func(ctx context.Context) error

// Watcher watches a single file through its parent directory, so editors
// that replace the file on save are still observed.
type Watcher struct {
	path     string
	debounce time.Duration
	run      RunFunc
	log      *zap.Logger

	// runs receives one value after every completed run. Tests use it.
	runs chan error
}

// New creates a watcher for path. A zero debounce uses the default.
func New(path string, cfg types.WatchConfig, run RunFunc, log *zap.Logger) (*Watcher, error) {
	if run == nil {
		return nil, errors.New("watch: run function is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = types.DefaultDebounce
	}
	return &Watcher{path: abs, debounce: debounce, run: run, log: log}, nil
}

// Run performs an initial run, then runs again after each burst of changes
// to the file settles for the debounce period. Run errors are logged and do
// not stop the watcher. Run returns when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	w.log.Info("watching for changes", zap.String("input", w.path), zap.Duration("debounce", w.debounce))

	w.runOnce(ctx)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("input changed", zap.String("op", event.Op.String()))
			stopTimer()
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.runOnce(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

// relevant reports whether event concerns the watched file's content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) runOnce(ctx context.Context) {
	err := w.run(ctx)
	if err != nil {
		w.log.Error("generation failed", zap.Error(err))
	}
	if w.runs != nil {
		select {
		case w.runs <- err:
		default:
		}
	}
}
