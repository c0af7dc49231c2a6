package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecEdits(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := NewWatcher(root)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "scripts", "canopy.tengo"), []byte("y := 1"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != "scripts/canopy.tengo" {
			t.Fatalf("expected scripts/canopy.tengo, got %q", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for watch event")
	}
}

func TestWatcherPendingIsNonBlocking(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := NewWatcher(root)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if got := w.Pending(); len(got) != 0 {
		t.Fatalf("expected no pending changes, got %v", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
