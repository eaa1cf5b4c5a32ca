package arbor

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to scene description files in a set of
// directories. Changed paths arrive on Events; bursts of writes to the same
// file within debounce are reported once.
//
// Events are delivered from a background goroutine; consume them from the
// goroutine that owns the scene, e.g. at the start of Scene.Update.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

const debounce = 100 * time.Millisecond

// NewWatcher starts watching dirs for description file changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("arbor: watch: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("arbor: watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Poll returns the next changed path without blocking.
func (w *Watcher) Poll() (string, bool) {
	select {
	case name, ok := <-w.Events:
		return name, ok
	default:
		return "", false
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(debouncer)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isDescFile(event.Name) {
				continue
			}
			if !last.allow(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isDescFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// debouncer remembers when each file was last reported.
type debouncer map[string]time.Time

// allow reports whether name may be reported at now, and forgets any file
// whose window has already passed so the map stays small.
func (d debouncer) allow(name string, now time.Time) bool {
	if t, ok := d[name]; ok && now.Sub(t) < debounce {
		return false
	}
	for n, t := range d {
		if now.Sub(t) >= debounce {
			delete(d, n)
		}
	}
	d[name] = now
	return true
}
