package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherInvokesHandlerOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowblade.toml")
	writeFile(t, path, "[editor]\n")

	fired := make(chan string, 1)
	w, err := New(path, 20*time.Millisecond, func(p string) {
		select {
		case fired <- p:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "[editor]\nundoDepth = 5\n")

	select {
	case p := <-fired:
		abs, _ := filepath.Abs(path)
		if p != abs {
			t.Errorf("handler path = %q, want %q", p, abs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler not invoked after write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowblade.toml")
	writeFile(t, path, "")

	var calls atomic.Int32
	w, err := New(path, 10*time.Millisecond, func(string) {
		calls.Add(1)
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "ignored")
	time.Sleep(200 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("handler invoked %d times for a sibling file, want 0", n)
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowblade.toml")
	writeFile(t, path, "")

	var calls atomic.Int32
	w, err := New(path, 150*time.Millisecond, func(string) {
		calls.Add(1)
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		writeFile(t, path, "burst")
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("handler invoked %d times for a write burst, want 1", n)
	}
}

func TestWatcherAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowblade.toml")
	writeFile(t, path, "old")

	fired := make(chan struct{}, 1)
	w, err := New(path, 20*time.Millisecond, func(string) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	defer w.Close()

	// Editors often write a temp file and rename it into place.
	tmp := filepath.Join(dir, ".flowblade.toml.tmp")
	writeFile(t, tmp, "new")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("handler not invoked after atomic replace")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowblade.toml")
	writeFile(t, path, "")

	w, err := New(path, 0, nil)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first close error = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second close error = %v, want ErrWatcherClosed", err)
	}
}
