package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/debounce"
	"github.com/3-lines-studio/vitrine/internal/sandbox"
	"github.com/3-lines-studio/vitrine/internal/source"
)

type SessionInput struct {
	Store    *source.Store
	Strategy Strategy
	Checker  Checker
	Sandbox  *sandbox.Sandbox
	Delay    time.Duration
	Logger   *zap.Logger

	// AfterFunc overrides the debounce timer.
	AfterFunc debounce.AfterFunc
}

// Session wires one editing surface: edits are debounced into the store,
// compiled by the pipeline and rendered by the sandbox. Frames are pushed
// to subscribers.
type Session struct {
	store     *source.Store
	debouncer *debounce.Debouncer[source.Buffer]
	pipeline  *Pipeline
	sandbox   *sandbox.Sandbox
	logger    *zap.Logger

	// editMu keeps the store and the debouncer in the same order.
	editMu   sync.Mutex
	renderMu sync.Mutex

	mu     sync.Mutex
	frame  core.Frame
	subs   map[chan core.Frame]struct{}
	closed bool
}

func NewSession(input SessionInput) *Session {
	logger := input.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := input.Store
	if store == nil {
		store = source.NewStore("")
	}
	sb := input.Sandbox
	if sb == nil {
		sb = sandbox.New(sandbox.WithLogger(logger))
	}

	s := &Session{
		store:   store,
		sandbox: sb,
		logger:  logger,
		frame:   core.Frame{Kind: core.FrameLoading},
		subs:    map[chan core.Frame]struct{}{},
	}

	opts := []PipelineOption{
		WithPipelineLogger(logger),
		WithStateListener(s.render),
	}
	if input.Checker != nil {
		opts = append(opts, WithChecker(input.Checker))
	}
	s.pipeline = NewPipeline(input.Strategy, opts...)

	var debounceOpts []debounce.Option
	if input.AfterFunc != nil {
		debounceOpts = append(debounceOpts, debounce.WithAfterFunc(input.AfterFunc))
	}
	s.debouncer = debounce.New(input.Delay, func(buf source.Buffer) { s.submit(buf) }, debounceOpts...)

	return s
}

// Start compiles the current buffer right away instead of waiting for the
// first edit.
func (s *Session) Start() uint64 {
	return s.submit(s.store.Current())
}

// Edit records text and schedules a compile once edits go quiet.
func (s *Session) Edit(text string) uint64 {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	rev := s.store.Set(text)
	s.debouncer.Push(source.Buffer{Text: text, Revision: rev})
	return rev
}

// Replace records text and compiles it immediately, dropping any pending
// debounced edit.
func (s *Session) Replace(text string) source.Buffer {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	s.debouncer.Cancel()
	rev := s.store.Set(text)
	buf := source.Buffer{Text: text, Revision: rev}
	s.submit(buf)
	return buf
}

// Restore brings back the default source and compiles it.
func (s *Session) Restore() source.Buffer {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	s.debouncer.Cancel()
	buf := s.store.Restore()
	s.submit(buf)
	return buf
}

// Flush compiles a pending edit now.
func (s *Session) Flush() bool {
	return s.debouncer.Flush()
}

func (s *Session) Source() source.Buffer {
	return s.store.Current()
}

func (s *Session) DefaultSource() string {
	return s.store.Default()
}

func (s *Session) Strategy() string {
	return s.pipeline.Strategy()
}

func (s *Session) Frame() core.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Session) State() core.PreviewState {
	return s.pipeline.State()
}

// Hot forwards a unit loaded outside the pipeline.
func (s *Session) Hot(src string, unit *core.Unit, err error) {
	s.pipeline.Hot(src, unit, err)
}

// Remount recreates the fault boundary and re-renders the current state.
func (s *Session) Remount() core.Frame {
	s.renderMu.Lock()
	s.sandbox.Remount()
	s.renderLocked(s.pipeline.State())
	s.renderMu.Unlock()

	return s.Frame()
}

func (s *Session) Subscribe() chan core.Frame {
	ch := make(chan core.Frame, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.subs[ch] = struct{}{}
	return ch
}

func (s *Session) Unsubscribe(ch chan core.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; !ok {
		return
	}
	delete(s.subs, ch)
	close(ch)
}

// Close stops the debouncer and the pipeline and closes subscriber
// channels. Nothing is published after Close returns.
func (s *Session) Close() {
	s.debouncer.Stop()
	s.pipeline.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

func (s *Session) submit(buf source.Buffer) uint64 {
	return s.pipeline.Submit(buf.Text, buf.Revision)
}

func (s *Session) render(state core.PreviewState) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	s.renderLocked(state)
}

func (s *Session) renderLocked(state core.PreviewState) {
	frame := s.sandbox.View(context.Background(), state)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.frame = frame

	for ch := range s.subs {
		// Keep only the newest frame for slow subscribers.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- frame:
		default:
		}
	}
}
