package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file into a Store whenever it changes on disk.
// It watches the parent directory so editors that replace the file atomically are still observed.
type Watcher struct {
	path  string
	store *Store
	fsw   *fsnotify.Watcher

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// Watch starts watching path and publishing each successful reload into store.
// Reloads that fail to decode or validate are logged and leave the store untouched.
//
// Parameters:
//   - path: the config file to watch
//   - store: the store to publish into
//
// Returns:
//   - *Watcher: the running watcher; call Close to stop it
//   - error: error if the watcher cannot be created
func Watch(path string, store *Store) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:  abs,
		store: store,
		fsw:   fsw,
		done:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// A truncate-then-write save shows up as an empty file first.
			if info, err := os.Stat(w.path); err != nil || info.Size() == 0 {
				continue
			}
			w.Reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// Reload loads the file once and publishes it.
//
// Returns:
//   - error: load or validation error (also logged)
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		return errors.Log(err)
	}
	if err := w.store.Set(cfg); err != nil {
		return errors.Log(err)
	}
	log.Printf("[Config] reloaded %s", w.path)
	return nil
}

// Close stops the watcher and waits for its goroutine to exit. Safe to call multiple times.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
