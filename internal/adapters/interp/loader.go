// Package interp loads authored components in process with the yaegi
// interpreter.
package interp

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	yaegi "github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/editor"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

const DefaultTimeout = 5 * time.Second

type Option func(*Loader)

func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader turns source snapshots into runnable units. Every load gets a fresh
// interpreter so nothing leaks between snapshots.
type Loader struct {
	cfg     *editor.Config
	logger  *zap.Logger
	timeout time.Duration
	symbols map[string]map[string]reflect.Value
}

func NewLoader(cfg *editor.Config, opts ...Option) *Loader {
	l := &Loader{
		cfg:     cfg,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
		symbols: make(map[string]map[string]reflect.Value),
	}
	for _, opt := range opts {
		opt(l)
	}

	for key, syms := range stdlib.Symbols {
		if cfg.ImportAllowed(importPathOf(key)) {
			l.symbols[key] = syms
		}
	}
	for key, syms := range Symbols {
		l.symbols[key] = syms
	}

	return l
}

func (l *Loader) Name() string {
	return "interp"
}

// Compile loads the snapshot in process. A load failure is returned as an
// error and never as a partial outcome.
func (l *Loader) Compile(ctx context.Context, snap core.Snapshot) (core.Outcome, error) {
	unit, err := l.Load(ctx, snap.Text)
	if err != nil {
		return core.Outcome{}, err
	}
	unit.Seq = snap.Seq
	return core.Outcome{Unit: unit}, nil
}

func (l *Loader) Load(ctx context.Context, src string) (unit *core.Unit, err error) {
	start := time.Now()

	mod, err := l.cfg.Prepare("preview.go", src)
	if err != nil {
		return nil, &core.LoadError{Message: firstLine(err.Error()), Err: err}
	}
	if len(mod.Forbidden) > 0 {
		return nil, &core.LoadError{
			Message: fmt.Sprintf("import %q is not available in the preview", mod.Forbidden[0].Path),
		}
	}

	console := &core.Console{}
	i := yaegi.New(yaegi.Options{
		Stdout: console,
		Stderr: console,
	})
	if err := i.Use(l.symbols); err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			unit = nil
			err = &core.LoadError{Message: fmt.Sprintf("panic while loading: %v", r)}
		}
	}()

	if _, err := i.EvalWithContext(ctx, mod.Source); err != nil {
		if ctx.Err() != nil {
			return nil, &core.LoadError{Message: "loading the component timed out", Err: ctx.Err()}
		}
		return nil, &core.LoadError{Message: err.Error(), Err: err}
	}

	unit = &core.Unit{Source: src, Console: console}

	entry := l.cfg.Options().Entry
	if !mod.HasEntry {
		l.logger.Debug("module has no entry", zap.String("entry", entry))
		return unit, nil
	}

	v, err := i.EvalWithContext(ctx, mod.Package+"."+entry)
	if err != nil {
		return nil, &core.LoadError{Message: err.Error(), Err: err}
	}

	fn, ok := v.Interface().(func() *ui.Node)
	if !ok {
		return nil, &core.LoadError{
			Message: fmt.Sprintf("%s must be func() *ui.Node, got %s", entry, v.Type()),
		}
	}
	unit.Entry = fn

	l.logger.Debug("loaded component",
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("entry", unit.HasEntry()),
	)
	return unit, nil
}

func importPathOf(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[:i]
	}
	return key
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
