package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "categories.yaml")
	writeFile(t, watched, "categories: []\n")

	w, err := NewWatcher(watched)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	if err := os.WriteFile(watched, []byte("categories:\n  - name: A\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	want, _ := filepath.Abs(watched)
	select {
	case name := <-w.Events:
		if name != want {
			t.Fatalf("expected event for %s, got %s", want, name)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}
}

func TestWatcherCloseClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	writeFile(t, path, "categories: []\n")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}
