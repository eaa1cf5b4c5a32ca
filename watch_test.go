package arbor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsDescFile(t *testing.T) {
	for path, want := range map[string]bool{
		"scene.yaml":       true,
		"scenes/level.yml": true,
		"UPPER.YAML":       true,
		"scene.json":       false,
		"scene.yaml.swp":   false,
		"yaml":             false,
	} {
		if got := isDescFile(path); got != want {
			t.Errorf("isDescFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("tps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event = %q, want %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatcherPollDoesNotBlock(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if name, ok := w.Poll(); ok {
		t.Errorf("Poll = %q, want nothing", name)
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
	// Closing twice is safe.
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDebouncerForgetsExpiredFiles(t *testing.T) {
	d := make(debouncer)
	t0 := time.Unix(1000, 0)

	if !d.allow("a.yaml", t0) {
		t.Fatal("first report should pass")
	}
	if d.allow("a.yaml", t0.Add(debounce/2)) {
		t.Error("repeat within the window should be dropped")
	}
	if !d.allow("b.yaml", t0.Add(debounce/2)) {
		t.Error("a different file should pass")
	}

	later := t0.Add(10 * debounce)
	if !d.allow("c.yaml", later) {
		t.Fatal("c.yaml should pass")
	}
	if len(d) != 1 {
		t.Errorf("debouncer holds %d files, want only c.yaml", len(d))
	}
	if !d.allow("a.yaml", later) {
		t.Error("a.yaml should pass again after the window")
	}
}
