// Package watcher reports changes to the dataset file so the viewer can
// reload it while it runs.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/glossnet/pkg/debug"
)

// DefaultPollInterval is the stat interval in polling mode.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnvVar switches every watcher to polling when set to a true value.
const ForcePollEnvVar = "GLOSSNET_FORCE_POLL"

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the quiet period before a change is reported.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounceDuration = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll skips fsnotify even where it would work.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher monitors one file. fsnotify watches the parent directory so that
// editors that save by rename are seen; remote filesystems are polled.
type Watcher struct {
	path             string
	debounceDuration time.Duration
	pollInterval     time.Duration
	forcePoll        bool

	mu        sync.RWMutex
	started   bool
	polling   bool
	fsType    FilesystemType
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	cancel    context.CancelFunc
	lastMtime time.Time
	lastSize  int64

	changes chan struct{}
	errs    chan error
}

// NewWatcher creates a watcher for path. Nothing is watched until Start.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:             abs,
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		changes:          make(chan struct{}, 1),
		errs:             make(chan error, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.pollInterval <= 0 {
		w.pollInterval = DefaultPollInterval
	}
	w.debouncer = NewDebouncer(w.debounceDuration)
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	info, err := os.Stat(w.path)
	switch {
	case err == nil:
		w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	case os.IsPermission(err):
		return ErrPermission
	default:
		// Not created yet; the first write will be reported.
		w.lastMtime, w.lastSize = time.Time{}, 0
	}

	w.fsType = DetectFilesystemType(w.path)
	w.polling = w.forcePoll || envBool(ForcePollEnvVar) || isRemoteFilesystem(w.fsType)

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	if !w.polling {
		if fsw, err := w.openNotify(); err != nil {
			debug.Log("watcher: fsnotify unavailable for %s: %v", w.path, err)
			w.polling = true
		} else {
			w.fsw = fsw
			go w.runNotify(ctx, fsw)
		}
	}
	if w.polling {
		go w.runPoll(ctx)
	}

	debug.Log("watcher: watching %s (fs=%s, polling=%v)", w.path, w.fsType, w.polling)
	w.started = true
	return nil
}

func (w *Watcher) openNotify() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return fsw, nil
}

// Stop ends watching. The channels stay open so a receiver blocked on them
// is not woken by a close.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	w.debouncer.Cancel()
	w.started = false
}

// Changed receives once per debounced burst of changes.
func (w *Watcher) Changed() <-chan struct{} { return w.changes }

// Errors receives watch failures such as ErrFileRemoved. Only the latest
// unread error is kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// IsPolling reports whether stat polling is in use.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// FilesystemType returns the classification made at Start.
func (w *Watcher) FilesystemType() FilesystemType {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fsType
}

// PollInterval returns the interval used in polling mode.
func (w *Watcher) PollInterval() time.Duration { return w.pollInterval }

func (w *Watcher) runNotify(ctx context.Context, fsw *fsnotify.Watcher) {
	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				w.debouncer.Trigger(w.notifyChange)
			case ev.Has(fsnotify.Rename), ev.Has(fsnotify.Remove):
				// An atomic save renames a new file over the old one; only
				// report removal if nothing took its place.
				w.debouncer.Trigger(w.checkStillThere)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.notifyError(err)
		}
	}
}

func (w *Watcher) checkStillThere() {
	if _, err := os.Stat(w.path); err != nil {
		w.notifyError(ErrFileRemoved)
		return
	}
	w.notifyChange()
}

func (w *Watcher) runPoll(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.pollOnce()
		}
	}
}

func (w *Watcher) pollOnce() {
	info, err := os.Stat(w.path)
	if err != nil {
		w.mu.Lock()
		hadFile := !w.lastMtime.IsZero()
		w.lastMtime, w.lastSize = time.Time{}, 0
		w.mu.Unlock()
		switch {
		case os.IsNotExist(err):
			if hadFile {
				w.notifyError(ErrFileRemoved)
			}
		case os.IsPermission(err):
			w.notifyError(ErrPermission)
		default:
			w.notifyError(err)
		}
		return
	}

	w.mu.Lock()
	changed := !info.ModTime().Equal(w.lastMtime) || info.Size() != w.lastSize
	w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	w.mu.Unlock()

	if changed {
		w.debouncer.Trigger(w.notifyChange)
	}
}

func (w *Watcher) notifyChange() {
	if !w.IsStarted() {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) notifyError(err error) {
	if !w.IsStarted() {
		return
	}
	debug.Log("watcher: %s: %v", w.path, err)
	// Replace a stale unread error with the newer one.
	select {
	case <-w.errs:
	default:
	}
	select {
	case w.errs <- err:
	default:
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
