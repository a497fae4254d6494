// Package watcher monitors a directory for new video files and hands them to
// a processing callback one at a time.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"subweave/internal/logging"
	"subweave/internal/media"
)

// Handler processes one newly arrived video file.
type Handler func(ctx context.Context, path string) error

// Watcher tails a directory for created video files. Files are handed to the
// handler sequentially once their size stops changing, so a half-copied file
// is never processed.
type Watcher struct {
	dir          string
	handler      Handler
	logger       *slog.Logger
	settleDelay  time.Duration
	settleChecks int
	fs           *fsnotify.Watcher
}

// Option adjusts watcher behaviour.
type Option func(*Watcher)

// WithSettleDelay sets the interval between file-size stability checks.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) { w.settleDelay = d }
}

// New creates a watcher for dir. Call Start to begin monitoring.
func New(dir string, handler Handler, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w := &Watcher{
		dir:          dir,
		handler:      handler,
		logger:       logging.NewComponentLogger(logger, "watcher"),
		settleDelay:  500 * time.Millisecond,
		settleChecks: 3,
		fs:           fs,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start blocks until ctx is cancelled or the watcher breaks.
func (w *Watcher) Start(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()

	w.logger.Info("watching for new videos", logging.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !media.IsSupportedVideo(event.Name) {
				continue
			}
			w.logger.Info("new video detected", logging.String("path", event.Name))
			if err := w.waitStable(ctx, event.Name); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger.Warn("file never settled, skipping",
					logging.String("path", event.Name), logging.Error(err))
				continue
			}
			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error("processing failed",
					logging.String("path", event.Name), logging.Error(err))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// waitStable returns once the file size has been unchanged for a few
// consecutive checks.
func (w *Watcher) waitStable(ctx context.Context, path string) error {
	var lastSize int64 = -1
	stable := 0
	for stable < w.settleChecks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.settleDelay):
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() == lastSize {
			stable++
		} else {
			stable = 0
			lastSize = info.Size()
		}
	}
	return nil
}
