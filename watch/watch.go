// Package watch implements a debounced filesystem watcher
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rjeczalik/notify"
)

// DefaultDelay is how long Watch waits for changes to settle
const DefaultDelay = 25 * time.Millisecond

// A Watcher receives notifications of changes
type Watcher interface {
	Changed(evs Events)
}

// WatcherFunc is a Watcher that is just a func
type WatcherFunc func(evs Events)

// Changed implements Watcher
func (fn WatcherFunc) Changed(evs Events) { fn(evs) }

// Watch wraps file system watchers and batches changes together
type Watch struct {
	delay    time.Duration
	evs      chan notify.EventInfo
	watchers chan Watcher
	stop     chan struct{}
}

// New creates a new Watch that recursively monitors the given directories
func New(dirs ...string) (*Watch, error) {
	w := &Watch{
		delay:    DefaultDelay,
		evs:      make(chan notify.EventInfo, 16),
		watchers: make(chan Watcher, 1),
		stop:     make(chan struct{}),
	}

	for _, dir := range dirs {
		err := notify.Watch(filepath.Join(dir, "..."), w.evs, notify.All)
		if err != nil {
			notify.Stop(w.evs)
			return nil, fmt.Errorf("failed to watch %q: %v", dir, err)
		}
	}

	go w.run()

	return w, nil
}

// Notify notifies the given Watcher of changes as they happen
func (w *Watch) Notify(wr Watcher) {
	if wr != nil {
		w.watchers <- wr
	}
}

// Stop terminates this instance
func (w *Watch) Stop() {
	notify.Stop(w.evs)
	close(w.stop)
}

func (w *Watch) run() {
	delay := time.NewTimer(time.Hour)
	delay.Stop()

	var evs Events
	var watchers []Watcher

	for {
		select {
		case wr := <-w.watchers:
			watchers = append(watchers, wr)

		case ev := <-w.evs:
			evs = append(evs, ev)
			delay.Reset(w.delay)

		case <-delay.C:
			for _, wr := range watchers {
				wr.Changed(evs)
			}

			evs = nil

		case <-w.stop:
			delay.Stop()
			return
		}
	}
}

// Events is a collection of change events
type Events []notify.EventInfo

// HasExt checks if any event path has one of the given extensions
func (evs Events) HasExt(exts ...string) bool {
	for _, ev := range evs {
		ext := filepath.Ext(ev.Path())
		for _, want := range exts {
			if ext == want {
				return true
			}
		}
	}

	return false
}

// Paths gets every distinct path that changed, sorted
func (evs Events) Paths() []string {
	seen := make(map[string]bool)

	var paths []string
	for _, ev := range evs {
		p := ev.Path()
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	sort.Strings(paths)
	return paths
}
