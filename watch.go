package collide

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigDebounce is how long a ConfigWatcher waits after the last change to
// the file before it reloads it. Editors often write a file in several steps.
const ConfigDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a YAML config file whenever it changes on disk.
//
// Every successful reload is sent on Configs; parse and watch failures go to
// Errors. Apply configs with World.ApplyConfig from the goroutine that steps
// the world.
type ConfigWatcher struct {
	Configs chan Config
	Errors  chan error

	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchConfig starts watching path. The directory is watched rather than the
// file itself so that editors that replace the file are followed too.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &ConfigWatcher{
		Configs: make(chan Config, 1),
		Errors:  make(chan error, 1),
		path:    abs,
		watcher: fw,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Close stops the watcher and closes both channels.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(ConfigDebounce)
			} else {
				timer.Stop()
				timer.Reset(ConfigDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := LoadConfig(w.path)
			if err != nil {
				if !w.send(nil, err) {
					return
				}
				continue
			}
			if !w.send(&cfg, nil) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !w.send(nil, err) {
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// send delivers a config or an error, giving up when the watcher closes.
func (w *ConfigWatcher) send(cfg *Config, err error) bool {
	if cfg != nil {
		select {
		case w.Configs <- *cfg:
			return true
		case <-w.closeCh:
			return false
		}
	}
	select {
	case w.Errors <- err:
		return true
	case <-w.closeCh:
		return false
	}
}
