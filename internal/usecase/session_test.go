package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/3-lines-studio/vitrine/internal/adapters/interp"
	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/debounce"
	"github.com/3-lines-studio/vitrine/internal/editor"
	"github.com/3-lines-studio/vitrine/internal/source"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) fire() {
	c.mu.Lock()
	var live []*manualTimer
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			live = append(live, t)
		}
	}
	c.mu.Unlock()

	for _, t := range live {
		t.f()
	}
}

// recordingStrategy returns a unit echoing the submitted text.
type recordingStrategy struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingStrategy) Name() string { return "recording" }

func (r *recordingStrategy) Compile(_ context.Context, snap core.Snapshot) (core.Outcome, error) {
	r.mu.Lock()
	r.texts = append(r.texts, snap.Text)
	r.mu.Unlock()
	return core.Outcome{Unit: textUnit(snap.Text)}, nil
}

func (r *recordingStrategy) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func frameText(f core.Frame) string {
	if f.Kind != core.FrameContent {
		return ""
	}
	return ui.TextContent(f.Node)
}

func TestSessionDebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &manualClock{}
	strategy := &recordingStrategy{}
	s := NewSession(SessionInput{
		Store:     source.NewStore("initial"),
		Strategy:  strategy,
		AfterFunc: clock.AfterFunc,
	})
	defer s.Close()

	s.Start()
	require.Eventually(t, func() bool { return frameText(s.Frame()) == "initial" }, time.Second, time.Millisecond)

	for _, text := range []string{"h", "he", "hel", "hello"} {
		s.Edit(text)
	}
	assert.Equal(t, "hello", s.Source().Text)
	assert.Equal(t, uint64(4), s.Source().Revision)

	clock.fire()
	require.Eventually(t, func() bool { return frameText(s.Frame()) == "hello" }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"initial", "hello"}, strategy.got())
}

func TestSessionConcurrentEditsSettleOnStoredText(t *testing.T) {
	defer goleak.VerifyNone(t)

	for round := 0; round < 50; round++ {
		clock := &manualClock{}
		strategy := &recordingStrategy{}
		s := NewSession(SessionInput{Store: source.NewStore("x"), Strategy: strategy, AfterFunc: clock.AfterFunc})

		var wg sync.WaitGroup
		for _, text := range []string{"a", "b", "c", "d"} {
			wg.Add(1)
			go func(text string) {
				defer wg.Done()
				s.Edit(text)
			}(text)
		}
		wg.Wait()

		stored := s.Source().Text
		clock.fire()
		require.Eventually(t, func() bool { return len(strategy.got()) == 1 }, time.Second, time.Millisecond)
		assert.Equal(t, []string{stored}, strategy.got(), "round %d", round)

		s.Close()
	}
}

func TestSessionReplaceDropsPendingEdit(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &manualClock{}
	strategy := &recordingStrategy{}
	s := NewSession(SessionInput{Store: source.NewStore("a"), Strategy: strategy, AfterFunc: clock.AfterFunc})
	defer s.Close()

	s.Edit("typed")
	buf := s.Replace("imported")
	assert.Equal(t, "imported", buf.Text)

	clock.fire()
	require.Eventually(t, func() bool { return frameText(s.Frame()) == "imported" }, time.Second, time.Millisecond)

	buf = s.Restore()
	assert.Equal(t, "a", buf.Text)
	require.Eventually(t, func() bool { return frameText(s.Frame()) == "a" }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"imported", "a"}, strategy.got())
}

func TestSessionSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewSession(SessionInput{Store: source.NewStore("x"), Strategy: &recordingStrategy{}})

	ch := s.Subscribe()
	s.Start()

	select {
	case frame := <-ch:
		assert.Equal(t, "x", frameText(frame))
	case <-time.After(time.Second):
		t.Fatal("no frame published")
	}

	other := s.Subscribe()
	s.Unsubscribe(other)
	_, open := <-other
	assert.False(t, open)

	s.Close()
	_, open = <-ch
	assert.False(t, open, "close must close subscriber channels")

	late := s.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestSessionCloseStopsEmission(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &manualClock{}
	strategy := &recordingStrategy{}
	s := NewSession(SessionInput{Store: source.NewStore("x"), Strategy: strategy, AfterFunc: clock.AfterFunc})

	s.Edit("pending")
	s.Close()
	clock.fire()

	assert.Empty(t, strategy.got())
	assert.Equal(t, core.FrameLoading, s.Frame().Kind)
}

func TestSessionWithInterpreter(t *testing.T) {
	clock := &manualClock{}
	cfg := editor.NewConfig()
	s := NewSession(SessionInput{
		Store:     source.NewStore(""),
		Strategy:  interp.NewLoader(cfg),
		AfterFunc: clock.AfterFunc,
	})
	defer s.Close()

	s.Start()
	require.Eventually(t, func() bool { return s.Frame().Kind == core.FrameContent }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, "Click me", frameText(s.Frame()))

	gallery := source.NewGallery()
	broken, err := gallery.Get("render_fault")
	require.NoError(t, err)

	s.Edit(broken)
	clock.fire()
	require.Eventually(t, func() bool { return s.Frame().Kind == core.FrameFault }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, core.FaultRender, s.Frame().Fault.Kind)
	assert.Contains(t, s.Frame().Fault.Message, "index out of range")

	fixed := source.DefaultSource
	seq := s.State().Seq
	s.Edit(fixed)
	clock.fire()
	require.Eventually(t, func() bool { return s.Frame().Seq > seq }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, core.FrameFault, s.Frame().Kind, "render faults stay until remount")

	frame := s.Remount()
	assert.Equal(t, core.FrameContent, frame.Kind)
	assert.Equal(t, "Click me", frameText(frame))

	s.Edit("package preview\n\nfunc Default( {")
	clock.fire()
	require.Eventually(t, func() bool {
		f := s.Frame()
		return f.Kind == core.FrameFault && f.Fault.Kind == core.FaultLoad
	}, 5*time.Second, 5*time.Millisecond)
}
