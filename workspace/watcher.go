package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the workspace root and re-parses tracked files whose
// modification time changed.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(*Document)
	onRemove     func(path string)
}

type WatcherOption func(*FileWatcher)

func WithPollInterval(d time.Duration) WatcherOption {
	return func(fw *FileWatcher) {
		fw.pollInterval = d
	}
}

// OnChange is called from the watcher goroutine after a file is (re)parsed.
func OnChange(fn func(*Document)) WatcherOption {
	return func(fw *FileWatcher) {
		fw.onChange = fn
	}
}

// OnRemove is called from the watcher goroutine after a file disappears.
func OnRemove(fn func(path string)) WatcherOption {
	return func(fw *FileWatcher) {
		fw.onRemove = fn
	}
}

func NewFileWatcher(w *Workspace, opts ...WatcherOption) *FileWatcher {
	fw := &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     func(*Document) {},
		onRemove:     func(string) {},
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

// Stop ends polling and waits for the watcher goroutine to return.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	<-fw.doneCh
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)

	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan()
		}
	}
}

func (fw *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(fw.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != fw.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fw.workspace.Tracks(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || !info.ModTime().Equal(lastMod) {
			doc, err := fw.workspace.ScanFile(path)
			if err != nil {
				return nil
			}
			fw.modTimes[path] = info.ModTime()
			fw.onChange(doc)
		}
		return nil
	})

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.onRemove(path)
		}
	}
}
