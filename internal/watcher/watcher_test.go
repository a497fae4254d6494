package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"subweave/internal/watcher"
)

func TestWatcherHandlesNewVideo(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{})

	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, path)
		mu.Unlock()
		close(done)
		return nil
	}

	w, err := watcher.New(dir, handler, nil, watcher.WithSettleDelay(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	video := filepath.Join(dir, "incoming.mp4")
	if err := os.WriteFile(video, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Start returned %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != video {
		t.Errorf("handled = %v", handled)
	}
}

func TestWatcherIgnoresNonVideoFiles(t *testing.T) {
	dir := t.TempDir()

	called := make(chan string, 1)
	handler := func(ctx context.Context, path string) error {
		called <- path
		return nil
	}

	w, err := watcher.New(dir, handler, nil, watcher.WithSettleDelay(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-called:
		t.Fatalf("handler invoked for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherRejectsMissingDirectory(t *testing.T) {
	_, err := watcher.New(filepath.Join(t.TempDir(), "absent"), func(context.Context, string) error { return nil }, nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
