package character

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a registry's persona file when it changes on disk.
type Watcher struct {
	path     string
	registry *Registry
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a watcher that reloads registry from path on change.
func NewWatcher(path string, registry *Registry) *Watcher {
	return &Watcher{
		path:     path,
		registry: registry,
		done:     make(chan struct{}),
	}
}

// Start begins watching. Editors typically replace files on save, so the
// parent directory is watched rather than the file itself. Call Stop to
// clean up.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}
	w.watcher = fw

	go w.loop()
	log.Printf("character: watching %s for changes", w.path)
	return nil
}

// Stop shuts down the watcher.
func (w *Watcher) Stop() {
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) != 0 && filepath.Clean(evt.Name) == filepath.Clean(w.path) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("character: watcher error: %v", err)
		}
	}
}

// reload re-reads the persona file. A broken file keeps the previous
// personas in place.
func (w *Watcher) reload() {
	chars, err := readFile(w.path)
	if err != nil {
		log.Printf("character: reload failed, keeping current personas: %v", err)
		return
	}
	w.registry.replace(chars)
	log.Printf("character: reloaded %d personas from %s", len(chars), w.path)
}
