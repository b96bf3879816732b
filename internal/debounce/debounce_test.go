package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// elapse fires every timer that has not been stopped.
func (c *fakeClock) elapse() {
	c.mu.Lock()
	var live []*fakeTimer
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

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) emit(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func newFake(t *testing.T) (*Debouncer[string], *fakeClock, *recorder) {
	t.Helper()
	clock := &fakeClock{}
	rec := &recorder{}
	d := New(DefaultDelay, rec.emit, WithAfterFunc(clock.AfterFunc))
	return d, clock, rec
}

func TestBurstEmitsLastValueOnce(t *testing.T) {
	d, clock, rec := newFake(t)

	d.Push("a")
	d.Push("ab")
	d.Push("abc")
	assert.True(t, d.Pending())

	clock.elapse()

	assert.Equal(t, []string{"abc"}, rec.got())
	assert.False(t, d.Pending())
}

func TestSeparateBurstsEmitInOrder(t *testing.T) {
	d, clock, rec := newFake(t)

	d.Push("a")
	d.Push("b")
	clock.elapse()

	d.Push("c")
	d.Push("d")
	clock.elapse()

	assert.Equal(t, []string{"b", "d"}, rec.got())
}

func TestStaleTimerDoesNotEmit(t *testing.T) {
	d, clock, rec := newFake(t)

	d.Push("old")
	clock.mu.Lock()
	stale := clock.timers[0]
	clock.mu.Unlock()

	d.Push("new")

	// A timer that already started running before Push reset it.
	stale.f()
	assert.Empty(t, rec.got())

	clock.elapse()
	assert.Equal(t, []string{"new"}, rec.got())
}

func TestStopCancelsPending(t *testing.T) {
	d, clock, rec := newFake(t)

	d.Push("a")
	d.Stop()
	clock.mu.Lock()
	for _, tm := range clock.timers {
		tm.stopped = false
	}
	clock.mu.Unlock()
	clock.elapse()

	d.Push("b")
	clock.elapse()

	assert.Empty(t, rec.got())
	assert.False(t, d.Pending())
}

func TestCancelKeepsDebouncerUsable(t *testing.T) {
	d, clock, rec := newFake(t)

	d.Push("dropped")
	d.Cancel()
	assert.False(t, d.Pending())
	clock.elapse()

	d.Push("kept")
	clock.elapse()

	assert.Equal(t, []string{"kept"}, rec.got())
}

func TestFlush(t *testing.T) {
	d, clock, rec := newFake(t)

	assert.False(t, d.Flush(), "flush without pending value")

	d.Push("a")
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"a"}, rec.got())

	clock.elapse()
	assert.Equal(t, []string{"a"}, rec.got(), "timer after flush must not emit again")
}

func TestNonPositiveDelayUsesDefault(t *testing.T) {
	d := New(0, func(string) {})
	assert.Equal(t, DefaultDelay, d.delay)
}

func TestRealTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recorder{}
	d := New(20*time.Millisecond, rec.emit)
	defer d.Stop()

	for _, v := range []string{"f", "fo", "foo"} {
		d.Push(v)
	}

	require.Eventually(t, func() bool { return len(rec.got()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"foo"}, rec.got())
}
