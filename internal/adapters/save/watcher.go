package save

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/debounce"
)

const DefaultReloadDelay = 50 * time.Millisecond

type Loader interface {
	Load(ctx context.Context, src string) (*core.Unit, error)
}

// Sink receives reloaded units along with the text they were loaded from.
type Sink interface {
	Hot(src string, unit *core.Unit, err error)
}

// Watcher reloads the preview file whenever it changes on disk and hands the
// result to the sink. Bursts of events are coalesced.
type Watcher struct {
	path   string
	fs     fs.FileSystem
	loader Loader
	sink   Sink
	logger *zap.Logger

	watcher   *fsnotify.Watcher
	debouncer *debounce.Debouncer[struct{}]

	ctx    context.Context
	cancel context.CancelFunc
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	running bool
}

type WatcherInput struct {
	Path   string
	FS     fs.FileSystem
	Loader Loader
	Sink   Sink
	Delay  time.Duration
	Logger *zap.Logger
}

func NewWatcher(input WatcherInput) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := input.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := input.Delay
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	fsys := input.FS
	if fsys == nil {
		fsys = fs.NewOSFileSystem()
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    filepath.Clean(input.Path),
		fs:      fsys,
		loader:  input.Loader,
		sink:    input.Sink,
		logger:  logger,
		watcher: watcher,
		ctx:     ctx,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	w.debouncer = debounce.New(delay, func(struct{}) { w.reload() })
	return w, nil
}

// Start watches the preview file's directory. Atomic writes replace the
// file, so the file itself cannot be watched.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.running = true
	w.logger.Info("watching preview file", zap.String("path", w.path))

	go w.run()
	return nil
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.cancel()
	w.debouncer.Stop()
	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close watcher", zap.Error(err))
	}
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.debouncer.Push(struct{}{})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// Reload loads the file now.
func (w *Watcher) Reload() {
	w.reload()
}

func (w *Watcher) reload() {
	data, err := w.fs.ReadFile(w.path)
	if err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			w.logger.Warn("failed to read preview file", zap.String("path", w.path), zap.Error(err))
		}
		return
	}

	src := string(data)
	unit, err := w.loader.Load(w.ctx, src)
	if w.ctx.Err() != nil {
		return
	}
	w.logger.Debug("preview file reloaded", zap.Bool("ok", err == nil))
	w.sink.Hot(src, unit, err)
}
