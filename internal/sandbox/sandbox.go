// Package sandbox turns preview state into frames, rendering loaded units
// inside a fault-isolation boundary.
package sandbox

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
)

const DefaultRenderTimeout = 2 * time.Second

type Option func(*Sandbox)

func WithRenderTimeout(d time.Duration) Option {
	return func(s *Sandbox) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Sandbox) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type Sandbox struct {
	mu       sync.Mutex
	timeout  time.Duration
	logger   *zap.Logger
	boundary *Boundary
	mounts   uint64
}

func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		timeout: DefaultRenderTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View decides and renders the frame for state. Fault and loading frames
// unmount the boundary; the next content frame mounts a fresh one.
func (s *Sandbox) View(ctx context.Context, state core.PreviewState) core.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := core.Frame{
		Seq:         state.Seq,
		Diagnostics: state.Diagnostics,
	}
	if state.Unit != nil {
		frame.Console = state.Unit.Console.String()
	}

	decision := core.DecideFrame(state, s.boundary != nil && s.boundary.Faulted())
	if decision.Unmount {
		s.boundary = nil
	}

	switch decision.Action {
	case core.ActionShowFault:
		frame.Kind = core.FrameFault
		frame.Fault = state.Fault

	case core.ActionShowBoundaryFault:
		frame.Kind = core.FrameFault
		frame.Fault = s.boundary.Fault()

	case core.ActionRenderUnit:
		b := s.mount()
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		node, fault := b.Render(ctx, state.Unit.Entry)
		cancel()

		if fault != nil {
			s.logger.Info("render fault",
				zap.Uint64("seq", state.Seq),
				zap.Uint64("boundary", b.ID()),
				zap.String("message", fault.Message),
			)
			frame.Kind = core.FrameFault
			frame.Fault = fault
			break
		}
		frame.Kind = core.FrameContent
		frame.Node = node
		// Console output from rendering lands after the unit was stored.
		frame.Console = state.Unit.Console.String()

	default:
		frame.Kind = core.FrameLoading
	}

	return frame
}

// Remount drops the current boundary, clearing a latched fault.
func (s *Sandbox) Remount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundary = nil
}

func (s *Sandbox) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundary != nil
}

func (s *Sandbox) Faulted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundary != nil && s.boundary.Faulted()
}

func (s *Sandbox) mount() *Boundary {
	if s.boundary == nil {
		s.mounts++
		s.boundary = &Boundary{id: s.mounts}
	}
	return s.boundary
}
