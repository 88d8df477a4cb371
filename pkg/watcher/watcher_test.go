package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func waitFor(condition func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return condition()
}

func TestSceneWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("name: a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sw, err := New(50*time.Millisecond, testLogger{t})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer sw.Close()

	changed := make(chan string, 10)
	if err := sw.Watch(path, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	sw.Start()

	if err := os.WriteFile(path, []byte("name: b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("Expected change for %s, got %s", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for change notification")
	}
}

func TestSceneWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("name: a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sw, err := New(20*time.Millisecond, testLogger{t})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer sw.Close()

	var calls int32
	if err := sw.Watch(path, func(string) { atomic.AddInt32(&calls, 1) }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	sw.Start()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("Expected no notifications for unrelated files, got %d", n)
	}
}

func TestSceneWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("v0"), 0644); err != nil {
		t.Fatal(err)
	}

	sw, err := New(300*time.Millisecond, testLogger{t})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer sw.Close()

	var calls int32
	if err := sw.Watch(path, func(string) { atomic.AddInt32(&calls, 1) }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	sw.Start()

	const writes = 5
	for i := 0; i < writes; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	if !waitFor(func() bool { return atomic.LoadInt32(&calls) > 0 }, 5*time.Second) {
		t.Fatal("Timed out waiting for change notification")
	}
	time.Sleep(500 * time.Millisecond)

	if n := atomic.LoadInt32(&calls); n >= writes {
		t.Errorf("Expected bursts of writes to be coalesced, got %d notifications", n)
	}
}

func TestSceneWatcher_CloseCancelsPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("v0"), 0644); err != nil {
		t.Fatal(err)
	}

	sw, err := New(time.Hour, testLogger{t})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var calls int32
	if err := sw.Watch(path, func(string) { atomic.AddInt32(&calls, 1) }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	sw.handleFileChange(mustAbs(t, path))

	if err := sw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	sw.handleFileChange(mustAbs(t, path))

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("Expected no notifications after close, got %d", n)
	}
}

func TestSceneWatcher_WatchMissingDirectory(t *testing.T) {
	sw, err := New(10*time.Millisecond, testLogger{t})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer sw.Close()

	missing := filepath.Join(t.TempDir(), "gone", "scene.yaml")
	if err := sw.Watch(missing, func(string) {}); err == nil {
		t.Error("Expected error watching a file in a missing directory")
	}
}

func mustAbs(t *testing.T, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}
