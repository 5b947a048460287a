package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/dhamidi/cubes/bag"
)

const example = `Game 1: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green
Game 2: 1 blue, 2 green; 3 green, 4 blue, 1 red; 1 green, 1 blue
Game 3: 8 green, 6 blue, 20 red; 5 blue, 4 red, 13 green; 5 green, 1 red
Game 4: 1 green, 3 red, 6 blue; 3 green, 6 red; 3 green, 15 blue, 14 red
Game 5: 6 red, 1 blue, 3 green; 2 blue, 1 red, 2 green
`

func TestUpdateFile(t *testing.T) {
	w := New(".", ".games")
	doc := w.UpdateFile("day2.games", []byte(example))
	if doc.ParseErr != nil {
		t.Fatalf("ParseErr: %v", doc.ParseErr)
	}

	sum, ok := doc.Summarize(bag.Default)
	if !ok {
		t.Fatal("Summarize reported a parse failure")
	}
	if sum != (Summary{FeasibleSum: 8, PowerSum: 2286}) {
		t.Errorf("Summary = %+v, want {8 2286}", sum)
	}

	r, ok := doc.RecordAtLine(3)
	if !ok || r.ID != 3 {
		t.Errorf("RecordAtLine(3) = %v, %v", r, ok)
	}
	if _, ok := doc.RecordAtLine(6); ok {
		t.Error("RecordAtLine(6) found a record past the end")
	}

	if w.GetFile("day2.games") != doc {
		t.Error("GetFile did not return the stored document")
	}
}

func TestUpdateFileParseError(t *testing.T) {
	w := New(".", ".games")
	doc := w.UpdateFile("bad.games", []byte("Game 1: 3 mauve\n"))
	if doc.ParseErr == nil {
		t.Fatal("expected parse error")
	}
	if _, ok := doc.Summarize(bag.Default); ok {
		t.Error("Summarize succeeded for a document that failed to parse")
	}
	if _, ok := doc.RecordAtLine(1); ok {
		t.Error("RecordAtLine succeeded for a document that failed to parse")
	}
}

func TestScanAllTracksExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.games"), example)
	writeFile(t, filepath.Join(dir, "sub", "b.games"), "Game 9: 1 red\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a record file")

	w := New(dir, ".games")
	if err := w.ScanAll(); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	paths := w.Paths()
	want := []string{filepath.Join(dir, "a.games"), filepath.Join(dir, "sub", "b.games")}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("Paths = %v, want %v", paths, want)
	}

	w.RemoveFile(want[0])
	if w.GetFile(want[0]) != nil {
		t.Error("RemoveFile left the document in place")
	}
}

func TestFileWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "day2.games")
	writeFile(t, path, example)

	changed := make(chan *Document, 8)
	removed := make(chan string, 8)

	w := New(dir, ".games")
	fw := NewFileWatcher(w,
		WithPollInterval(10*time.Millisecond),
		OnChange(func(d *Document) { changed <- d }),
		OnRemove(func(p string) { removed <- p }),
	)
	fw.Start()
	defer fw.Stop()

	doc := receive(t, changed)
	if doc.Path != path || doc.ParseErr != nil {
		t.Fatalf("initial scan: doc = %+v", doc)
	}

	tmp := path + ".tmp"
	writeFile(t, tmp, "Game 1: 2 red\n")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(tmp, later, later); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	for {
		doc = receive(t, changed)
		if len(doc.Records) == 1 && doc.Records[0].Draws[0].Red() == 2 {
			break
		}
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if got := receive(t, removed); got != path {
		t.Errorf("removed %q, want %q", got, path)
	}
	if w.GetFile(path) != nil {
		t.Error("removed file still tracked")
	}
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	var v T
	select {
	case v = <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher")
	}
	return v
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
