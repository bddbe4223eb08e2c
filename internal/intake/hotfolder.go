package intake

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mzyy94/spoolsniff/internal/spool"
)

// DefaultDebounce is how long a file must stay unchanged before it is
// picked up.
const DefaultDebounce = 500 * time.Millisecond

const (
	doneDir   = "done"
	failedDir = "failed"
)

// HotFolder watches a directory and submits every file dropped into it.
// Processed files move to done/, rejected ones to failed/.
type HotFolder struct {
	Dir      string
	Debounce time.Duration // 0 = DefaultDebounce

	submit  Submitter
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	pending map[string]time.Time // path -> last change
	done    chan struct{}
}

// NewHotFolder creates a watcher for dir that submits to s.
func NewHotFolder(dir string, s Submitter) *HotFolder {
	return &HotFolder{Dir: dir, submit: s, pending: make(map[string]time.Time)}
}

// Start creates the folder layout, queues files already present and
// begins watching. It returns once the watch is established.
func (h *HotFolder) Start(ctx context.Context) error {
	if h.Debounce <= 0 {
		h.Debounce = DefaultDebounce
	}
	for _, d := range []string{h.Dir, filepath.Join(h.Dir, doneDir), filepath.Join(h.Dir, failedDir)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("create hot folder %s: %w", d, err)
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(h.Dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", h.Dir, err)
	}
	h.watcher = w
	h.done = make(chan struct{})

	entries, err := os.ReadDir(h.Dir)
	if err != nil {
		w.Close()
		return fmt.Errorf("read hot folder: %w", err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() && !ignoredName(e.Name()) {
			h.touch(filepath.Join(h.Dir, e.Name()))
		}
	}

	slog.Info("hot folder watching", "dir", h.Dir, "existing", len(h.pending))
	go h.loop(ctx)
	return nil
}

// Stop stops watching and waits for the current file to finish.
func (h *HotFolder) Stop() {
	if h.watcher != nil {
		h.watcher.Close()
	}
	if h.done != nil {
		<-h.done
	}
}

func (h *HotFolder) loop(ctx context.Context) {
	defer close(h.done)
	ticker := time.NewTicker(h.Debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.watcher.Close()
			return

		case ev, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if ignoredName(filepath.Base(ev.Name)) {
				continue
			}
			h.touch(ev.Name)

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("hot folder watch error", "err", err)

		case <-ticker.C:
			for _, path := range h.ready(time.Now()) {
				h.process(ctx, path)
			}
		}
	}
}

func (h *HotFolder) touch(path string) {
	h.mu.Lock()
	h.pending[path] = time.Now()
	h.mu.Unlock()
}

// ready removes and returns the paths quiet for at least the debounce time.
func (h *HotFolder) ready(now time.Time) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for path, changed := range h.pending {
		if now.Sub(changed) >= h.Debounce {
			out = append(out, path)
			delete(h.pending, path)
		}
	}
	return out
}

func (h *HotFolder) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	if info.Size() > int64(h.submit.MaxJobSize()) {
		h.finish(path, failedDir, fmt.Errorf("%w: %d bytes", spool.ErrJobTooLarge, info.Size()))
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("hot folder read failed", "path", path, "err", err)
		return
	}
	job := spool.NewJob(filepath.Base(path), spool.SourceHotFolder, data)
	if _, err := h.submit.Submit(ctx, job); err != nil {
		h.finish(path, failedDir, err)
		return
	}
	h.finish(path, doneDir, nil)
}

func (h *HotFolder) finish(path, sub string, cause error) {
	dst := filepath.Join(h.Dir, sub, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		slog.Warn("hot folder move failed", "path", path, "dst", dst, "err", err)
		return
	}
	if cause != nil {
		slog.Warn("hot folder job rejected", "path", path, "err", cause)
	}
}

// ignoredName skips hidden and partial uploads.
func ignoredName(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, ".tmp") ||
		strings.HasSuffix(name, ".part")
}
