package cli

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/sheetdock/pkg/level"
)

// watchDebounce is the quiet period after the last write before a change is
// reported. Editors often write a file in several steps.
const watchDebounce = 150 * time.Millisecond

// levelWatcher reports edits to the files of a level. Events for a burst of
// writes are coalesced into one signal on Changes.
type levelWatcher struct {
	Changes <-chan struct{}

	changes chan struct{}
	files   map[string]bool
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// newLevelWatcher watches the set file and every sheet file of lvl. The
// containing directories are watched so that editors replacing a file via
// rename are still seen.
func newLevelWatcher(lvl *level.Level) (*levelWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan struct{}, 1)
	w := &levelWatcher{
		Changes: ch,
		changes: ch,
		files:   make(map[string]bool),
		done:    make(chan struct{}),
		watcher: fw,
	}

	dirs := make(map[string]bool)
	for _, f := range append([]string{lvl.Path}, lvl.Files...) {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

// Stop closes the watcher and waits for its goroutine to exit.
func (w *levelWatcher) Stop() {
	w.watcher.Close()
	<-w.done
}

func (w *levelWatcher) loop() {
	defer close(w.done)

	var last time.Time
	ticker := time.NewTicker(watchDebounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				last = time.Now()
			}

		case <-ticker.C:
			if last.IsZero() || time.Since(last) < watchDebounce {
				continue
			}
			last = time.Time{}
			select {
			case w.changes <- struct{}{}:
			default:
				// A signal is already pending.
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
