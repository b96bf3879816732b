// Package vitrine is a live preview playground for Go UI components: an
// edited source buffer is debounced, checked, loaded and rendered behind a
// fault boundary, and the result is pushed to the browser or terminal.
package vitrine

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
	vhttp "github.com/3-lines-studio/vitrine/internal/adapters/http"
	"github.com/3-lines-studio/vitrine/internal/adapters/interp"
	"github.com/3-lines-studio/vitrine/internal/adapters/save"
	"github.com/3-lines-studio/vitrine/internal/config"
	"github.com/3-lines-studio/vitrine/internal/editor"
	"github.com/3-lines-studio/vitrine/internal/sandbox"
	"github.com/3-lines-studio/vitrine/internal/source"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

type Config = config.Config

type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	fs      usecase.FileSystem
	editor  *editor.Config
	checker *editor.Service
	loader  *interp.Loader
	session *usecase.Session
	saver   *usecase.SaveService
	watcher *save.Watcher
	handler http.Handler

	stopOnce sync.Once
}

type Option func(*App)

func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithFileSystem(fsys usecase.FileSystem) Option {
	return func(a *App) {
		if fsys != nil {
			a.fs = fsys
		}
	}
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{
		cfg:    cfg,
		logger: zap.NewNop(),
		fs:     fs.NewOSFileSystem(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.editor = EditorConfig(cfg)
	a.checker = editor.NewService(a.editor, a.logger.Named("editor"))
	a.loader = interp.NewLoader(a.editor,
		interp.WithTimeout(cfg.GetLoadTimeout()),
		interp.WithLogger(a.logger.Named("interp")),
	)

	seed := ""
	if cfg.Preview.Source != "" {
		data, err := a.fs.ReadFile(cfg.Preview.Source)
		if err != nil {
			a.checker.Close()
			return nil, fmt.Errorf("failed to read preview source: %w", err)
		}
		seed = string(data)
	}

	strategy, err := a.strategy()
	if err != nil {
		a.checker.Close()
		return nil, err
	}

	a.session = usecase.NewSession(usecase.SessionInput{
		Store:    source.NewStore(seed),
		Strategy: strategy,
		Checker:  a.checker,
		Sandbox: sandbox.New(
			sandbox.WithRenderTimeout(cfg.GetRenderTimeout()),
			sandbox.WithLogger(a.logger.Named("sandbox")),
		),
		Delay:  cfg.GetDelay(),
		Logger: a.logger.Named("session"),
	})

	if cfg.IsSave() {
		a.watcher, err = save.NewWatcher(save.WatcherInput{
			Path:   cfg.Save.Path,
			FS:     a.fs,
			Loader: a.loader,
			Sink:   a.session,
			Delay:  cfg.GetReloadDelay(),
			Logger: a.logger.Named("watcher"),
		})
		if err != nil {
			a.session.Close()
			a.checker.Close()
			return nil, err
		}
		if cfg.Save.URL == "" {
			a.saver = usecase.NewSaveService(a.fs, cfg.Save.Path, a.logger.Named("save"))
		}
	}

	a.handler = vhttp.NewRouter(vhttp.RouterInput{
		Session: a.session,
		Gallery: source.NewGallery(),
		Save:    a.saver,
		Title:   cfg.Title,
		IsDev:   cfg.Dev,
		Logger:  a.logger.Named("http"),
	})

	return a, nil
}

// EditorConfig builds the authoring configuration from the app config.
func EditorConfig(cfg *config.Config) *editor.Config {
	opts := []editor.Option{
		editor.WithPackage(cfg.Editor.Package),
		editor.WithEntry(cfg.Editor.Entry),
		editor.WithGoVersion(cfg.Editor.GoVersion),
	}
	for prefix, root := range cfg.Editor.Aliases {
		opts = append(opts, editor.WithAlias(prefix, root))
	}
	if len(cfg.Editor.AllowedImports) > 0 {
		opts = append(opts, editor.WithAllowedImports(cfg.Editor.AllowedImports...))
	}
	return editor.NewConfig(opts...)
}

func (a *App) strategy() (usecase.Strategy, error) {
	if !a.cfg.IsSave() {
		return a.loader, nil
	}

	url := a.cfg.Save.URL
	if url == "" {
		host, port, err := net.SplitHostPort(a.cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid addr %q: %w", a.cfg.Addr, err)
		}
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
		}
		url = "http://" + net.JoinHostPort(host, port) + "/_preview/save"
	}

	return save.NewClient(url,
		save.WithHTTPClient(&http.Client{Timeout: a.cfg.GetSaveTimeout()}),
		save.WithLogger(a.logger.Named("save")),
	), nil
}

// Start begins watching the preview file in save mode and compiles the
// initial buffer.
func (a *App) Start() error {
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			return fmt.Errorf("failed to watch preview file: %w", err)
		}
	}
	a.session.Start()
	a.logger.Info("playground started",
		zap.String("strategy", a.session.Strategy()),
		zap.Bool("dev", a.cfg.Dev),
	)
	return nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Session() *usecase.Session {
	return a.session
}

func (a *App) Checker() *editor.Service {
	return a.checker
}

func (a *App) Loader() *interp.Loader {
	return a.loader
}

func (a *App) Config() *config.Config {
	return a.cfg
}

// Stop tears the playground down. No frame is published after it returns.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		if a.watcher != nil {
			a.watcher.Stop()
		}
		a.session.Close()
		a.checker.Close()
	})
}
