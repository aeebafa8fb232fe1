package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads the config file whenever it changes on disk and hands every
// valid result to onChange. Invalid edits are logged and skipped.
type Watcher struct {
	path     string
	log      logrus.FieldLogger
	onChange func(*Config)
}

func NewWatcher(log logrus.FieldLogger, path string, onChange func(*Config)) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		log:      log,
		onChange: onChange,
	}
}

// Run watches until ctx is done. Watcher failures disable reloading but never
// stop the service.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Warnf("config watcher: %v (reload disabled)", err)
		<-ctx.Done()
		return nil
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		w.log.Warnf("config watch %s: %v (reload disabled)", dir, err)
		<-ctx.Done()
		return nil
	}
	w.log.Infof("Watching %s for config changes", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("config watcher error: %v", err)
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := NewFromFile(w.path)
	if err != nil {
		w.log.Warnf("Ignoring config change: %v", err)
		return
	}
	w.onChange(cfg)
}
