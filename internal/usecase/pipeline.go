package usecase

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
)

const previewFile = "preview.go"

type PipelineOption func(*Pipeline)

func WithChecker(c Checker) PipelineOption {
	return func(p *Pipeline) {
		p.checker = c
	}
}

func WithPipelineLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStateListener is called after every applied change, in apply order.
func WithStateListener(fn func(core.PreviewState)) PipelineOption {
	return func(p *Pipeline) {
		p.onChange = fn
	}
}

// Pipeline runs one compile per submitted snapshot and applies results in
// submission order. A result older than the last applied one is dropped.
type Pipeline struct {
	strategy Strategy
	checker  Checker
	logger   *zap.Logger
	onChange func(core.PreviewState)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	notifyMu sync.Mutex
	mu       sync.Mutex
	seq      uint64
	applied  uint64
	state    core.PreviewState
	closed   bool

	// Text of the applied deferred snapshot; its unit arrives through Hot.
	awaiting    string
	hasAwaiting bool
	// Latest reload, kept for a deferred result that lands after it.
	reload *reload
}

type reload struct {
	src  string
	unit *core.Unit
	err  error
}

func NewPipeline(strategy Strategy, opts ...PipelineOption) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		strategy: strategy,
		logger:   zap.NewNop(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Strategy() string {
	return p.strategy.Name()
}

// Submit starts a compile for text and returns its sequence number, or zero
// once the pipeline is closed.
func (p *Pipeline) Submit(text string, revision uint64) uint64 {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0
	}
	p.seq++
	snap := core.Snapshot{Seq: p.seq, Revision: revision, Text: text}
	p.wg.Add(1)
	p.mu.Unlock()

	p.logger.Debug("snapshot submitted",
		zap.Uint64("seq", snap.Seq),
		zap.Uint64("revision", revision),
		zap.String("strategy", p.strategy.Name()),
	)

	go p.run(snap)
	return snap.Seq
}

func (p *Pipeline) run(snap core.Snapshot) {
	defer p.wg.Done()

	var diags []core.Diagnostic
	if p.checker != nil {
		diags = p.checker.Check(p.ctx, previewFile, snap.Text)
	}

	outcome, err := p.strategy.Compile(p.ctx, snap)
	p.apply(snap, outcome, diags, err)
}

func (p *Pipeline) apply(snap core.Snapshot, outcome core.Outcome, diags []core.Diagnostic, err error) {
	seq := snap.Seq

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if seq <= p.applied {
		p.mu.Unlock()
		p.logger.Debug("stale result dropped", zap.Uint64("seq", seq), zap.Uint64("applied", p.applied))
		return
	}
	if errors.Is(err, core.ErrSuperseded) {
		p.mu.Unlock()
		p.logger.Debug("superseded result dropped", zap.Uint64("seq", seq))
		return
	}

	diags = append(diags, outcome.Diagnostics...)
	p.applied = seq
	p.awaiting, p.hasAwaiting = "", false

	switch {
	case err != nil:
		fault := core.FaultFrom(err)
		p.logger.Info("compile failed",
			zap.Uint64("seq", seq),
			zap.String("kind", string(fault.Kind)),
			zap.Error(err),
		)
		p.state = core.PreviewState{Seq: seq, Fault: fault, Diagnostics: diags}
	case outcome.Deferred:
		p.awaiting, p.hasAwaiting = snap.Text, true
		p.state.Seq = seq
		p.state.Fault = nil
		p.state.Diagnostics = diags
		if r := p.reload; r != nil && r.src == snap.Text {
			p.installLocked(r.unit, r.err)
		}
	default:
		p.state = core.PreviewState{Seq: seq, Unit: outcome.Unit, Diagnostics: diags}
	}

	state := p.state
	p.mu.Unlock()

	p.notify(state)
}

// Hot installs a unit delivered outside of Submit, such as a reload of the
// watched preview file. src is the text the unit was loaded from; it is only
// accepted when it matches the latest applied snapshot and that snapshot's
// outcome was deferred. A load error replaces the current unit with a fault.
func (p *Pipeline) Hot(src string, unit *core.Unit, err error) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.reload = &reload{src: src, unit: unit, err: err}
	if !p.hasAwaiting || src != p.awaiting {
		applied := p.applied
		p.mu.Unlock()
		p.logger.Debug("reload does not match the applied snapshot", zap.Uint64("applied", applied))
		return
	}
	p.installLocked(unit, err)
	state := p.state
	p.mu.Unlock()

	p.logger.Debug("hot update applied", zap.Uint64("seq", state.Seq), zap.Bool("fault", err != nil))
	p.notify(state)
}

func (p *Pipeline) installLocked(unit *core.Unit, err error) {
	if err != nil {
		p.state.Unit = nil
		p.state.Fault = core.FaultFrom(err)
		return
	}
	if unit != nil {
		unit.Seq = p.state.Seq
	}
	p.state.Unit = unit
	p.state.Fault = nil
}

func (p *Pipeline) notify(state core.PreviewState) {
	if p.onChange != nil {
		p.onChange(state)
	}
}

func (p *Pipeline) State() core.PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close cancels in-flight compiles and waits for them. Results that arrive
// afterwards are dropped.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()

	// Wait out a Hot call that passed the closed check.
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
}
