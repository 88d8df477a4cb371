package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// SceneWatcher reports edits to scene files. It watches the parent directory
// of each file so that editors which save by renaming a temporary file over
// the original are still noticed.
type SceneWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]bool
	debounce  time.Duration
	timers    map[string]*time.Timer
	logger    core.Logger
	closed    bool
}

// New creates a watcher that waits for debounce of quiet time before
// reporting a change
func New(debounce time.Duration, logger core.Logger) (*SceneWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &SceneWatcher{
		watcher:   watcher,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]bool),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		logger:    logger,
	}, nil
}

// Watch registers onChange for edits to file
func (sw *SceneWatcher) Watch(file string, onChange func(string)) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	dir := filepath.Dir(absPath)
	if !sw.dirs[dir] {
		if err := sw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		sw.dirs[dir] = true
	}

	sw.callbacks[absPath] = onChange
	return nil
}

// Start begins delivering change notifications in the background
func (sw *SceneWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-sw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					sw.handleFileChange(filepath.Clean(event.Name))
				}

			case err, ok := <-sw.watcher.Errors:
				if !ok {
					return
				}
				sw.logger.Printf("watcher error: %v", err)
			}
		}
	}()
}

// handleFileChange restarts the quiet-time timer of a watched file
func (sw *SceneWatcher) handleFileChange(path string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	callback, exists := sw.callbacks[path]
	if !exists || sw.closed {
		return
	}

	if timer, exists := sw.timers[path]; exists {
		timer.Stop()
	}
	sw.timers[path] = time.AfterFunc(sw.debounce, func() {
		callback(path)
	})
}

// Close stops the watcher and cancels pending notifications
func (sw *SceneWatcher) Close() error {
	sw.mu.Lock()
	sw.closed = true
	for _, timer := range sw.timers {
		timer.Stop()
	}
	sw.mu.Unlock()

	return sw.watcher.Close()
}
