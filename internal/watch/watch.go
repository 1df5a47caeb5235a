// Package watch keeps a process's task collection consistent with writes
// made by other taskdeck processes sharing the same data directory. It is the
// terminal equivalent of a browser's cross-tab storage events: whole-snapshot
// replacement, last writer wins, no merge.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/edvall/taskdeck/internal/logs"
	"github.com/edvall/taskdeck/internal/store"
)

// Let bursts of writes settle before parsing the slot.
const debounce = 100 * time.Millisecond

// Event carries a replacement task collection.
type Event struct {
	Tasks []store.Task
}

// Listener is the single "task collection changed externally" notification.
// Two ingress adapters feed it: a filesystem watcher on the tasks slot
// (writes from other processes) and the storage echo channel (this process's
// own saves, already parsed). Consumers dispatch TaskStore.Sync with each
// payload; Sync is idempotent and never writes back, so duplicate delivery —
// including the fsnotify event for our own write — cannot start a loop.
type Listener struct {
	storage *store.Storage
	echo    <-chan []store.Task
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
}

// New starts a listener over st's data directory.
func New(st *store.Storage) (*Listener, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, not the file: the slot may not exist yet, and a
	// file-level watch would be dropped by rename-style writes.
	if err := w.Add(filepath.Dir(st.TasksPath())); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch data directory: %w", err)
	}

	// Subscribe before the goroutine starts so a save racing New still
	// echoes.
	l := &Listener{
		storage: st,
		echo:    st.Updates(),
		watcher: w,
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}
	go l.run()
	return l, nil
}

// Events delivers replacement snapshots.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Close stops both ingress adapters.
func (l *Listener) Close() error {
	close(l.done)
	return l.watcher.Close()
}

func (l *Listener) run() {
	tasksPath := l.storage.TasksPath()

	// Settle timer for slot changes. A single save surfaces as a burst of
	// fsnotify events (Create then Write on a fresh slot); the timer is
	// re-armed per event so the whole burst collapses into one read and one
	// delivery, and the loop keeps serving done/echo/errors meanwhile.
	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-l.done:
			return

		case tasks, ok := <-l.echo:
			if !ok {
				return
			}
			l.emit(Event{Tasks: tasks})

		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != tasksPath {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(debounce)
				settleC = settle.C
			} else {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(debounce)
			}

		case <-settleC:
			settle = nil
			settleC = nil
			tasks, err := l.storage.ReadTasks()
			if err != nil {
				// Malformed or half-written payload: keep previous state.
				logs.Logger.Printf("ignoring task slot change: %v", err)
				continue
			}
			l.emit(Event{Tasks: tasks})

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logs.Logger.Printf("watch error: %v", err)
		}
	}
}

func (l *Listener) emit(ev Event) {
	select {
	case l.events <- ev:
	default:
		logs.Logger.Printf("sync event dropped: consumer not keeping up")
	}
}
