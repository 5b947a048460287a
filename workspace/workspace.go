// Package workspace keeps parsed record files of a directory tree in memory.
package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dhamidi/cubes/bag"
	"github.com/dhamidi/cubes/record"
)

type Workspace struct {
	mu         sync.RWMutex
	rootDir    string
	extensions []string
	files      map[string]*Document
}

// Document is one record file and the result of parsing it.
type Document struct {
	Path     string
	Content  []byte
	Records  []record.Record
	ParseErr error
}

// Summary holds both aggregates of a successfully parsed document.
type Summary struct {
	FeasibleSum int
	PowerSum    int
}

// Summarize computes both aggregates. It reports false when the document
// failed to parse.
func (d *Document) Summarize(capacity bag.Bag) (Summary, bool) {
	if d.ParseErr != nil {
		return Summary{}, false
	}
	return Summary{
		FeasibleSum: bag.SumFeasibleIDs(d.Records, capacity),
		PowerSum:    bag.SumPowers(d.Records),
	}, true
}

// RecordAtLine returns the record on the 1-based line, if the document parsed.
func (d *Document) RecordAtLine(line int) (record.Record, bool) {
	if d.ParseErr != nil || line < 1 || line > len(d.Records) {
		return record.Record{}, false
	}
	return d.Records[line-1], true
}

// New creates a workspace rooted at rootDir tracking files with the given
// extensions.
func New(rootDir string, extensions ...string) *Workspace {
	return &Workspace{
		rootDir:    rootDir,
		extensions: extensions,
		files:      make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Tracks reports whether path has one of the workspace's extensions.
func (w *Workspace) Tracks(path string) bool {
	return slices.Contains(w.extensions, filepath.Ext(path))
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if w.Tracks(path) {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile parses content and stores it under path, replacing any
// previous version.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	records, err := record.Parse(record.TrimFinalNewline(string(content)), record.WithFile(filepath.Base(path)))
	doc := &Document{
		Path:     path,
		Content:  content,
		Records:  records,
		ParseErr: err,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = doc
	return doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths returns the tracked paths in lexical order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}
