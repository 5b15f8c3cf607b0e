package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports when any .jsonl file under the watched directories
// changes. It does not say what changed; the ingestion cache works that
// out from modification times. fsnotify does the heavy lifting where the
// platform supports it, with a polling sweep as a safety net for missed
// events and newly created directories.
type Watcher struct {
	dirs         []string
	pollInterval time.Duration
	onChange     func()

	mu    sync.Mutex
	seen  map[string]fileState // path -> last observed state
	stop  chan struct{}
	wg    sync.WaitGroup
	began bool
}

type fileState struct {
	modTime time.Time
	size    int64
}

func New(dirs []string, pollInterval time.Duration, onChange func()) *Watcher {
	return &Watcher{
		dirs:         dirs,
		pollInterval: pollInterval,
		onChange:     onChange,
		seen:         make(map[string]fileState),
		stop:         make(chan struct{}),
	}
}

// Start begins watching with fsnotify plus the polling fallback.
func (w *Watcher) Start() error {
	w.began = true
	w.prime()

	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		for _, dir := range w.dirs {
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err == nil && info.IsDir() {
					_ = fsw.Add(path)
				}
				return nil
			})
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case event, ok := <-fsw.Events:
					if !ok {
						return
					}
					if filepath.Ext(event.Name) == ".jsonl" &&
						(event.Op&fsnotify.Write != 0 || event.Op&fsnotify.Create != 0) {
						w.checkFile(event.Name)
					}
					// New project directories need their own watch.
					if event.Op&fsnotify.Create != 0 {
						if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
							_ = fsw.Add(event.Name)
						}
					}
				case <-w.stop:
					fsw.Close()
					return
				}
			}
		}()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.pollAll()
			case <-w.stop:
				return
			}
		}
	}()

	return nil
}

// Stop signals goroutines to exit and waits for them to finish.
func (w *Watcher) Stop() {
	if !w.began {
		return
	}
	close(w.stop)
	w.wg.Wait()
}

// prime records the current state of all files so the first poll does not
// report the entire history as fresh changes.
func (w *Watcher) prime() {
	states := w.sweep()
	w.mu.Lock()
	for path, st := range states {
		w.seen[path] = st
	}
	w.mu.Unlock()
}

func (w *Watcher) checkFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	prev, known := w.seen[path]
	changed := !known || info.Size() != prev.size || info.ModTime().After(prev.modTime)
	if changed {
		w.seen[path] = fileState{modTime: info.ModTime(), size: info.Size()}
	}
	w.mu.Unlock()

	if changed {
		w.onChange()
	}
}

func (w *Watcher) pollAll() {
	states := w.sweep()

	w.mu.Lock()
	changed := false
	for path, st := range states {
		prev, known := w.seen[path]
		if !known || st.size != prev.size || st.modTime.After(prev.modTime) {
			w.seen[path] = st
			changed = true
		}
	}
	w.mu.Unlock()

	if changed {
		w.onChange()
	}
}

// sweep collects file states without holding the lock.
func (w *Watcher) sweep() map[string]fileState {
	states := make(map[string]fileState)
	for _, dir := range w.dirs {
		_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || filepath.Ext(path) != ".jsonl" {
				return nil
			}
			states[path] = fileState{modTime: info.ModTime(), size: info.Size()}
			return nil
		})
	}
	return states
}
